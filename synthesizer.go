package personasdk

import (
	"fmt"
	"strings"
)

// ──────────────────────────────────────────────
// Profile synthesis — ordered answers → PersonalityProfile
// ──────────────────────────────────────────────

// DefaultProfileName is the fixed persona name assigned at synthesis time.
// The name is not user-derived.
const DefaultProfileName = "镜像"

// Fixed prefixes of the two seeded long-term memory lines.
const (
	seedInfluenceFormat = "[Origin] Deep influence: %s"
	seedInterestFormat  = "[Origin] Future focus: %s"
)

// SynthesisMapping binds catalog card ids to their semantic slots. Any
// catalog works as long as the slot semantics hold.
type SynthesisMapping struct {
	IdentityCard    int // TEXT_INPUT, comma-separated identity tags
	PlanningCard    int // SLIDER → traits.planning
	RationalityCard int // SLIDER → traits.rationality
	RiskCard        int // SLIDER → traits.risk
	ValuesCard      int // SORTABLE, value priority order
	ToneCard        int // SINGLE_SELECT, desired relational tone
	TicksCard       int // TEXT_INPUT, comma-separated verbal ticks
	InfluenceCard   int // TEXT_AREA, deepest influence → seeded memory
	InterestCard    int // TEXT_INPUT, future interests → seeded memory
}

// DefaultSynthesisMapping matches DefaultCards.
func DefaultSynthesisMapping() SynthesisMapping {
	return SynthesisMapping{
		IdentityCard:    1,
		PlanningCard:    4,
		RationalityCard: 5,
		RiskCard:        8,
		ValuesCard:      9,
		ToneCard:        15,
		TicksCard:       16,
		InfluenceCard:   19,
		InterestCard:    20,
	}
}

// Synthesize maps the ordered answer list to a profile using the default
// mapping. It is total: any partial (or empty) answer list produces a
// profile with documented defaults, never an error.
func Synthesize(answers []UserAnswer, catalog Catalog) *PersonalityProfile {
	return SynthesizeWithMapping(answers, catalog, DefaultSynthesisMapping())
}

// SynthesizeWithMapping is Synthesize against an explicit slot mapping.
// Calling it twice over the same answers yields structurally identical
// profiles; the only derived state is the two seeded memory lines, which
// are deterministic functions of the answers.
func SynthesizeWithMapping(answers []UserAnswer, catalog Catalog, m SynthesisMapping) *PersonalityProfile {
	byCard := indexAnswers(answers)

	profile := &PersonalityProfile{
		SchemaVersion:  ProfileSchemaVersion,
		Name:           DefaultProfileName,
		CoreIdentities: splitTags(textAnswer(byCard, m.IdentityCard)),
		Traits: map[string]float64{
			TraitPlanning:    scaleAnswer(byCard, m.PlanningCard),
			TraitRationality: scaleAnswer(byCard, m.RationalityCard),
			TraitRisk:        scaleAnswer(byCard, m.RiskCard),
		},
		Values: resolveValues(byCard, m.ValuesCard, catalog),
		CommunicationStyle: CommunicationStyle{
			Ticks: splitTags(textAnswer(byCard, m.TicksCard)),
			Tone:  toneAnswer(byCard, m.ToneCard),
		},
		Memories: Memories{
			LongTerm: []string{
				fmt.Sprintf(seedInfluenceFormat, textAnswer(byCard, m.InfluenceCard)),
				fmt.Sprintf(seedInterestFormat, textAnswer(byCard, m.InterestCard)),
			},
			ShortTerm: []string{},
		},
	}
	return profile
}

// indexAnswers maps cardId → value. A repeated cardId keeps the last answer.
func indexAnswers(answers []UserAnswer) map[int]AnswerValue {
	byCard := make(map[int]AnswerValue, len(answers))
	for _, a := range answers {
		byCard[a.CardID] = a.Value
	}
	return byCard
}

// textAnswer returns the free-text answer of a card, "" when missing or
// carrying a different shape.
func textAnswer(byCard map[int]AnswerValue, cardID int) string {
	if s, ok := byCard[cardID].Text(); ok {
		return s
	}
	return ""
}

// scaleAnswer returns the slider answer of a card, 0.5 when missing or
// non-numeric.
func scaleAnswer(byCard map[int]AnswerValue, cardID int) float64 {
	if v, ok := byCard[cardID].Scale(); ok {
		return v
	}
	return 0.5
}

// toneAnswer returns the chosen tone code, "neutral" when absent.
func toneAnswer(byCard map[int]AnswerValue, cardID int) string {
	if code, ok := byCard[cardID].Choice(); ok && code != "" {
		return code
	}
	return "neutral"
}

// resolveValues maps the sortable ordering to human-readable labels via the
// card's option catalog, falling back to the raw code when unresolvable.
func resolveValues(byCard map[int]AnswerValue, cardID int, catalog Catalog) []string {
	codes, ok := byCard[cardID].Ranking()
	if !ok {
		return []string{}
	}
	card, found := catalog.ByID(cardID)
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if found {
			if label, ok := card.OptionLabel(code); ok {
				out = append(out, label)
				continue
			}
		}
		out = append(out, code)
	}
	return out
}

// splitTags splits on ASCII and full-width comma-like separators, trims
// whitespace and drops empty fragments.
func splitTags(s string) []string {
	out := []string{}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	for _, f := range fields {
		if tag := strings.TrimSpace(f); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
