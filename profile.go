package personasdk

// ProfileSchemaVersion is stamped on every synthesized profile document.
// Documents persisted before versioning existed are read back as version "1".
const ProfileSchemaVersion = "1"

// Trait keys of PersonalityProfile.Traits. Values are always in [0,1].
const (
	TraitPlanning    = "planning"
	TraitRationality = "rationality"
	TraitRisk        = "risk"
)

// PersonalityProfile is the synthesized personality model, persisted as a
// single document. Memories.LongTerm is append-only and grows over the
// profile's lifetime; every other field is immutable after synthesis.
type PersonalityProfile struct {
	SchemaVersion  string             `json:"schema_version,omitempty"`
	Name           string             `json:"name"`
	CoreIdentities []string           `json:"coreIdentities"`
	Traits         map[string]float64 `json:"traits"`
	Values         []string           `json:"values"`

	CommunicationStyle CommunicationStyle `json:"communicationStyle"`
	Memories           Memories           `json:"memories"`
}

// CommunicationStyle captures the persona's voice.
type CommunicationStyle struct {
	Ticks []string `json:"ticks"` // verbal ticks, used occasionally in replies
	Tone  string   `json:"tone"`  // desired relational tone option code
}

// Memories holds the persona's memory log.
type Memories struct {
	LongTerm  []string `json:"longTerm"`  // append-only, never shrinks
	ShortTerm []string `json:"shortTerm"` // recent context, rebuilt freely
}

// Trait returns a named trait, defaulting to the 0.5 midpoint when absent.
func (p *PersonalityProfile) Trait(key string) float64 {
	if v, ok := p.Traits[key]; ok {
		return v
	}
	return 0.5
}

// FirstIdentity returns the leading core identity, or fallback when none exists.
func (p *PersonalityProfile) FirstIdentity(fallback string) string {
	if len(p.CoreIdentities) > 0 {
		return p.CoreIdentities[0]
	}
	return fallback
}

// EnsureSchemaVersion stamps documents persisted before versioning existed.
func (p *PersonalityProfile) EnsureSchemaVersion() {
	if p.SchemaVersion == "" {
		p.SchemaVersion = ProfileSchemaVersion
	}
}

// Clone returns a deep copy.
func (p *PersonalityProfile) Clone() *PersonalityProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.CoreIdentities = copyStrings(p.CoreIdentities)
	out.Values = copyStrings(p.Values)
	out.CommunicationStyle.Ticks = copyStrings(p.CommunicationStyle.Ticks)
	out.Memories.LongTerm = copyStrings(p.Memories.LongTerm)
	out.Memories.ShortTerm = copyStrings(p.Memories.ShortTerm)
	if p.Traits != nil {
		out.Traits = make(map[string]float64, len(p.Traits))
		for k, v := range p.Traits {
			out.Traits[k] = v
		}
	}
	return &out
}
