package personasdk

import (
	"fmt"
	"strings"
)

// ──────────────────────────────────────────────
// CardEngine — ordered questionnaire state machine
// ──────────────────────────────────────────────
//
// States: AwaitingInput(position) → Validating → AwaitingInput(position)
// with a card error, or Advancing(position) → AwaitingInput(position+1),
// or Complete when the last card validates.
//
// Usage:
//
//	engine, _ := personasdk.NewCardEngine(personasdk.DefaultCards())
//	engine.SetText("创业者, 父亲")
//	if err := engine.Advance(); err == nil {
//	    engine.FinishTransition()
//	}

// cardBehavior is the per-type strategy: how a card defaults its pending
// value on entry and how it validates on an advance request.
type cardBehavior struct {
	defaultValue func(card *CardDefinition) AnswerValue
	validate     func(card *CardDefinition, v AnswerValue) *ValidationError
}

var cardBehaviors = map[CardType]cardBehavior{
	CardTextInput: {
		defaultValue: func(*CardDefinition) AnswerValue { return AnswerValue{} },
		validate:     validateText,
	},
	CardTextArea: {
		defaultValue: func(*CardDefinition) AnswerValue { return AnswerValue{} },
		validate:     validateText,
	},
	CardSingleSelect: {
		defaultValue: func(*CardDefinition) AnswerValue { return AnswerValue{} },
		validate: func(card *CardDefinition, v AnswerValue) *ValidationError {
			if _, ok := v.Choice(); !ok {
				return &ValidationError{CardID: card.ID, Message: MsgSelectionRequired}
			}
			return nil
		},
	},
	CardMultiSelect: {
		defaultValue: func(*CardDefinition) AnswerValue { return AnswerValue{} },
		validate: func(card *CardDefinition, v AnswerValue) *ValidationError {
			codes, ok := v.Selection()
			if !ok || len(codes) == 0 {
				return &ValidationError{CardID: card.ID, Message: MsgAtLeastOne}
			}
			return nil
		},
	},
	CardSlider: {
		// Sliders are born valid at the midpoint.
		defaultValue: func(*CardDefinition) AnswerValue { return ScaleValue(0.5) },
		validate:     func(*CardDefinition, AnswerValue) *ValidationError { return nil },
	},
	CardSortable: {
		// Sortables are born valid in declared option order.
		defaultValue: func(card *CardDefinition) AnswerValue {
			return RankingValue(card.OptionValues())
		},
		validate: func(*CardDefinition, AnswerValue) *ValidationError { return nil },
	},
}

func validateText(card *CardDefinition, v AnswerValue) *ValidationError {
	s, ok := v.Text()
	if !ok || strings.TrimSpace(s) == "" {
		return &ValidationError{CardID: card.ID, Message: MsgTextRequired}
	}
	return nil
}

// CardEngine drives the ordered card sequence, holds the in-progress answer
// and produces the final ordered answer list. Not safe for concurrent use;
// one engine serves one onboarding session.
type CardEngine struct {
	catalog       Catalog
	position      int
	pending       AnswerValue
	committed     []UserAnswer
	cardErr       *ValidationError
	transitioning bool
	complete      bool
}

// NewCardEngine creates an engine positioned on the first card.
func NewCardEngine(catalog Catalog) (*CardEngine, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	e := &CardEngine{catalog: catalog}
	e.enterCard()
	return e, nil
}

// Current returns the card at the current position, or nil once complete.
func (e *CardEngine) Current() *CardDefinition {
	if e.complete {
		return nil
	}
	return &e.catalog[e.position]
}

// Position returns the current index into the catalog.
func (e *CardEngine) Position() int { return e.position }

// Progress returns completion in [0,1] counting the current card.
func (e *CardEngine) Progress() float64 {
	if e.complete {
		return 1
	}
	return float64(e.position+1) / float64(len(e.catalog))
}

// Pending returns the in-progress value for the current card.
func (e *CardEngine) Pending() AnswerValue { return e.pending }

// Err returns the validation error from the last advance attempt, if any.
func (e *CardEngine) Err() *ValidationError { return e.cardErr }

// Complete reports whether the last card has been committed.
func (e *CardEngine) Complete() bool { return e.complete }

// Transitioning reports whether the engine is inside the suspension window
// between two cards. The window exists for exit animations only; committed
// data never changes during it.
func (e *CardEngine) Transitioning() bool { return e.transitioning }

// FinishTransition ends the suspension window, making the new card interactive.
func (e *CardEngine) FinishTransition() { e.transitioning = false }

// Answers returns a copy of the committed answer list in card order.
func (e *CardEngine) Answers() []UserAnswer {
	out := make([]UserAnswer, len(e.committed))
	copy(out, e.committed)
	return out
}

// SetText replaces the pending text of a TEXT_INPUT/TEXT_AREA card.
func (e *CardEngine) SetText(s string) {
	card, ok := e.interactive()
	if !ok || (card.Type != CardTextInput && card.Type != CardTextArea) {
		return
	}
	e.pending = TextValue(s)
	e.cardErr = nil
}

// Choose sets the chosen option of a SINGLE_SELECT card.
func (e *CardEngine) Choose(code string) {
	card, ok := e.interactive()
	if !ok || card.Type != CardSingleSelect {
		return
	}
	e.pending = ChoiceValue(code)
	e.cardErr = nil
}

// Toggle flips one option of a MULTI_SELECT card. Selecting an already
// selected code removes it; a new code appends only while the selection is
// below the card's cap. Attempts beyond the cap are silently ignored.
func (e *CardEngine) Toggle(code string) {
	card, ok := e.interactive()
	if !ok || card.Type != CardMultiSelect {
		return
	}
	e.cardErr = nil

	codes, _ := e.pending.Selection()
	for i, c := range codes {
		if c == code {
			e.pending = SelectionValue(append(codes[:i], codes[i+1:]...))
			return
		}
	}
	if card.MaxSelections > 0 && len(codes) >= card.MaxSelections {
		return
	}
	e.pending = SelectionValue(append(codes, code))
}

// SelectionCount returns the current multi-select size, 0 for other types.
func (e *CardEngine) SelectionCount() int {
	codes, _ := e.pending.Selection()
	return len(codes)
}

// SetScale replaces the pending SLIDER value, clamped to [0,1].
func (e *CardEngine) SetScale(v float64) {
	card, ok := e.interactive()
	if !ok || card.Type != CardSlider {
		return
	}
	e.pending = ScaleValue(v)
	e.cardErr = nil
}

// MoveItem swaps the SORTABLE item at index with its neighbor at
// index+direction (direction is -1 or +1). Out-of-range moves are no-ops.
func (e *CardEngine) MoveItem(index, direction int) {
	card, ok := e.interactive()
	if !ok || card.Type != CardSortable {
		return
	}
	if direction != -1 && direction != 1 {
		return
	}
	order, _ := e.pending.Ranking()
	j := index + direction
	if index < 0 || index >= len(order) || j < 0 || j >= len(order) {
		return
	}
	order[index], order[j] = order[j], order[index]
	e.pending = RankingValue(order)
	e.cardErr = nil
}

// Advance validates the pending value and, on success, commits it and moves
// to the next card (opening the suspension window) or enters the terminal
// Complete state on the last card. On failure the position and committed
// answers are unchanged and the error is also retained on the engine.
func (e *CardEngine) Advance() *ValidationError {
	card, ok := e.interactive()
	if !ok {
		return nil
	}

	if verr := cardBehaviors[card.Type].validate(card, e.pending); verr != nil {
		e.cardErr = verr
		return verr
	}

	e.committed = append(e.committed, UserAnswer{CardID: card.ID, Value: e.pending})

	if e.position == len(e.catalog)-1 {
		e.complete = true
		e.pending = AnswerValue{}
		e.cardErr = nil
		return nil
	}

	e.position++
	e.transitioning = true
	e.enterCard()
	return nil
}

// interactive returns the current card when input is accepted: not complete
// and not inside the suspension window.
func (e *CardEngine) interactive() (*CardDefinition, bool) {
	if e.complete || e.transitioning {
		return nil, false
	}
	return &e.catalog[e.position], true
}

// enterCard applies the per-type default and clears any stale error.
func (e *CardEngine) enterCard() {
	card := &e.catalog[e.position]
	e.pending = cardBehaviors[card.Type].defaultValue(card)
	e.cardErr = nil
}
