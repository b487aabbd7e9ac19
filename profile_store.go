package personasdk

import "sync"

// ──────────────────────────────────────────────
// Persistence boundary — whole-document get/put
// ──────────────────────────────────────────────

// ProfileStore persists the PersonalityProfile as one opaque document under
// a fixed key. Save replaces the whole document; there is no partial merge.
type ProfileStore interface {
	// Load returns the stored profile, or (nil, nil) when none exists yet.
	Load() (*PersonalityProfile, error)

	// Save overwrites the stored profile document.
	Save(profile *PersonalityProfile) error
}

// CatalogStore persists the card catalog as one document, mirroring the
// profile contract. An absent catalog is (nil, nil), not an error.
type CatalogStore interface {
	LoadCatalog() (Catalog, error)
	SaveCatalog(catalog Catalog) error
}

// InMemoryProfileStore is a thread-safe in-memory store for development and
// tests. Data is lost on restart.
type InMemoryProfileStore struct {
	mu      sync.RWMutex
	profile *PersonalityProfile
	catalog Catalog
}

// NewInMemoryProfileStore creates an empty in-memory store.
func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{}
}

func (s *InMemoryProfileStore) Load() (*PersonalityProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone(), nil
}

func (s *InMemoryProfileStore) Save(profile *PersonalityProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile.Clone()
	return nil
}

func (s *InMemoryProfileStore) LoadCatalog() (Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, nil
	}
	out := make(Catalog, len(s.catalog))
	copy(out, s.catalog)
	return out, nil
}

func (s *InMemoryProfileStore) SaveCatalog(catalog Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = make(Catalog, len(catalog))
	copy(s.catalog, catalog)
	return nil
}

var (
	_ ProfileStore = (*InMemoryProfileStore)(nil)
	_ CatalogStore = (*InMemoryProfileStore)(nil)
)
