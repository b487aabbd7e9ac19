package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	personasdk "github.com/edgemindTech/edge-persona-sdk-go"
)

// FileProfileStore persists the profile and catalog as JSON files on disk.
// Layout: {baseDir}/profile.json, {baseDir}/cards.json
type FileProfileStore struct {
	BaseDir string
}

// NewFileProfileStore creates a FileProfileStore at the given directory.
func NewFileProfileStore(baseDir string) *FileProfileStore {
	return &FileProfileStore{BaseDir: baseDir}
}

func (s *FileProfileStore) profilePath() string { return filepath.Join(s.BaseDir, "profile.json") }
func (s *FileProfileStore) catalogPath() string { return filepath.Join(s.BaseDir, "cards.json") }

func (s *FileProfileStore) Load() (*personasdk.PersonalityProfile, error) {
	data, err := os.ReadFile(s.profilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var profile personasdk.PersonalityProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	profile.EnsureSchemaVersion()
	return &profile, nil
}

func (s *FileProfileStore) Save(profile *personasdk.PersonalityProfile) error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return os.WriteFile(s.profilePath(), data, 0644)
}

func (s *FileProfileStore) LoadCatalog() (personasdk.Catalog, error) {
	data, err := os.ReadFile(s.catalogPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var catalog personasdk.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return catalog, nil
}

func (s *FileProfileStore) SaveCatalog(catalog personasdk.Catalog) error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return os.WriteFile(s.catalogPath(), data, 0644)
}

var (
	_ personasdk.ProfileStore = (*FileProfileStore)(nil)
	_ personasdk.CatalogStore = (*FileProfileStore)(nil)
)
