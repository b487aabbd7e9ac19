package personasdk

import (
	"encoding/json"
	"fmt"
)

// ──────────────────────────────────────────────
// AnswerValue — tagged union over the answer shapes
// ──────────────────────────────────────────────

// ValueKind discriminates the shape held by an AnswerValue.
type ValueKind int

const (
	KindNone      ValueKind = iota // nothing entered yet
	KindText                       // TEXT_INPUT / TEXT_AREA
	KindChoice                     // SINGLE_SELECT option code
	KindSelection                  // MULTI_SELECT option codes, insertion order
	KindScale                      // SLIDER value in [0,1]
	KindRanking                    // SORTABLE option codes, user order
)

// AnswerValue holds one answer in exactly one of five shapes.
// The zero value is KindNone. The wire form is the raw variant
// (string / []string / number); the referenced card's type is needed
// to reinterpret it, so decoding goes through DecodeAnswerValue.
type AnswerValue struct {
	kind      ValueKind
	text      string
	choice    string
	selection []string
	scale     float64
	ranking   []string
}

// TextValue builds a free-text answer.
func TextValue(s string) AnswerValue { return AnswerValue{kind: KindText, text: s} }

// ChoiceValue builds a single-select answer holding the option code.
func ChoiceValue(code string) AnswerValue { return AnswerValue{kind: KindChoice, choice: code} }

// SelectionValue builds a multi-select answer. The slice is copied.
func SelectionValue(codes []string) AnswerValue {
	return AnswerValue{kind: KindSelection, selection: copyStrings(codes)}
}

// ScaleValue builds a slider answer clamped to [0,1].
func ScaleValue(v float64) AnswerValue {
	return AnswerValue{kind: KindScale, scale: clamp01(v)}
}

// RankingValue builds a sortable answer. The slice is copied.
func RankingValue(codes []string) AnswerValue {
	return AnswerValue{kind: KindRanking, ranking: copyStrings(codes)}
}

// Kind returns the discriminant.
func (v AnswerValue) Kind() ValueKind { return v.kind }

// IsZero reports whether no value has been entered.
func (v AnswerValue) IsZero() bool { return v.kind == KindNone }

// Text returns the free-text form.
func (v AnswerValue) Text() (string, bool) { return v.text, v.kind == KindText }

// Choice returns the chosen single-select option code.
func (v AnswerValue) Choice() (string, bool) { return v.choice, v.kind == KindChoice }

// Selection returns a copy of the multi-select codes in insertion order.
func (v AnswerValue) Selection() ([]string, bool) {
	if v.kind != KindSelection {
		return nil, false
	}
	return copyStrings(v.selection), true
}

// Scale returns the slider value.
func (v AnswerValue) Scale() (float64, bool) { return v.scale, v.kind == KindScale }

// Ranking returns a copy of the sortable codes in user order.
func (v AnswerValue) Ranking() ([]string, bool) {
	if v.kind != KindRanking {
		return nil, false
	}
	return copyStrings(v.ranking), true
}

// MarshalJSON emits the raw variant: string, []string, or number.
// KindNone marshals as null.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNone:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.text)
	case KindChoice:
		return json.Marshal(v.choice)
	case KindSelection:
		return json.Marshal(v.selection)
	case KindScale:
		return json.Marshal(v.scale)
	case KindRanking:
		return json.Marshal(v.ranking)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// DecodeAnswerValue reinterprets a raw wire value against the card's declared type.
// The variant tag is not self-describing, so the card is required.
func DecodeAnswerValue(cardType CardType, raw json.RawMessage) (AnswerValue, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return AnswerValue{}, nil
	}
	switch cardType {
	case CardTextInput, CardTextArea:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return AnswerValue{}, fmt.Errorf("decode %s answer: %w", cardType, err)
		}
		return TextValue(s), nil
	case CardSingleSelect:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return AnswerValue{}, fmt.Errorf("decode %s answer: %w", cardType, err)
		}
		return ChoiceValue(s), nil
	case CardMultiSelect:
		var codes []string
		if err := json.Unmarshal(raw, &codes); err != nil {
			return AnswerValue{}, fmt.Errorf("decode %s answer: %w", cardType, err)
		}
		return SelectionValue(codes), nil
	case CardSlider:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return AnswerValue{}, fmt.Errorf("decode %s answer: %w", cardType, err)
		}
		return ScaleValue(f), nil
	case CardSortable:
		var codes []string
		if err := json.Unmarshal(raw, &codes); err != nil {
			return AnswerValue{}, fmt.Errorf("decode %s answer: %w", cardType, err)
		}
		return RankingValue(codes), nil
	}
	return AnswerValue{}, fmt.Errorf("unknown card type %q", cardType)
}

// UserAnswer is one committed answer referencing its card.
type UserAnswer struct {
	CardID int         `json:"cardId"`
	Value  AnswerValue `json:"value"`
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
