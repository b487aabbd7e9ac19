package personasdk

import (
	"encoding/json"
	"reflect"
	"testing"
)

// ══════════════════════════════════════════════
// AnswerValue tests
// ══════════════════════════════════════════════

func TestAnswerValue_ZeroIsNone(t *testing.T) {
	var v AnswerValue
	if !v.IsZero() || v.Kind() != KindNone {
		t.Fatal("zero value should be KindNone")
	}
	if _, ok := v.Text(); ok {
		t.Fatal("none should not read as text")
	}
}

func TestAnswerValue_ConstructorsCopySlices(t *testing.T) {
	codes := []string{"a", "b"}
	v := SelectionValue(codes)
	codes[0] = "mutated"
	got, _ := v.Selection()
	if got[0] != "a" {
		t.Fatal("SelectionValue must copy its input")
	}

	// Accessor output is also detached.
	got[1] = "mutated"
	again, _ := v.Selection()
	if again[1] != "b" {
		t.Fatal("Selection must return a copy")
	}
}

func TestAnswerValue_MarshalRawVariant(t *testing.T) {
	cases := []struct {
		value AnswerValue
		want  string
	}{
		{AnswerValue{}, "null"},
		{TextValue("你好"), `"你好"`},
		{ChoiceValue("warm"), `"warm"`},
		{SelectionValue([]string{"a", "b"}), `["a","b"]`},
		{ScaleValue(0.5), "0.5"},
		{RankingValue([]string{"x", "y"}), `["x","y"]`},
	}
	for _, c := range cases {
		data, err := json.Marshal(c.value)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != c.want {
			t.Fatalf("expected %s, got %s", c.want, data)
		}
	}
}

func TestDecodeAnswerValue_ByCardType(t *testing.T) {
	// The same raw string decodes to different shapes depending on the card.
	text, err := DecodeAnswerValue(CardTextInput, json.RawMessage(`"warm"`))
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := text.Text(); !ok || s != "warm" {
		t.Fatalf("unexpected text decode %+v", text)
	}

	choice, err := DecodeAnswerValue(CardSingleSelect, json.RawMessage(`"warm"`))
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := choice.Choice(); !ok || c != "warm" {
		t.Fatalf("unexpected choice decode %+v", choice)
	}

	scale, err := DecodeAnswerValue(CardSlider, json.RawMessage(`1.5`))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := scale.Scale(); v != 1 {
		t.Fatalf("decode should clamp slider values, got %v", v)
	}

	ranking, err := DecodeAnswerValue(CardSortable, json.RawMessage(`["b","a"]`))
	if err != nil {
		t.Fatal(err)
	}
	if order, _ := ranking.Ranking(); !reflect.DeepEqual(order, []string{"b", "a"}) {
		t.Fatalf("unexpected ranking decode %v", order)
	}
}

func TestDecodeAnswerValue_NullAndMismatch(t *testing.T) {
	v, err := DecodeAnswerValue(CardTextInput, json.RawMessage(`null`))
	if err != nil || !v.IsZero() {
		t.Fatalf("null should decode to the zero value, got (%+v, %v)", v, err)
	}

	if _, err := DecodeAnswerValue(CardSlider, json.RawMessage(`"not a number"`)); err == nil {
		t.Fatal("shape mismatch should fail")
	}
	if _, err := DecodeAnswerValue(CardType("BOGUS"), json.RawMessage(`1`)); err == nil {
		t.Fatal("unknown card type should fail")
	}
}

func TestUserAnswer_RoundTrip(t *testing.T) {
	answers := []UserAnswer{
		{CardID: 9, Value: RankingValue([]string{"quality", "cost"})},
	}
	data, err := json.Marshal(answers)
	if err != nil {
		t.Fatal(err)
	}

	var wire []struct {
		CardID int             `json:"cardId"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatal(err)
	}
	v, err := DecodeAnswerValue(CardSortable, wire[0].Value)
	if err != nil {
		t.Fatal(err)
	}
	if order, _ := v.Ranking(); !reflect.DeepEqual(order, []string{"quality", "cost"}) {
		t.Fatalf("round trip lost the order: %v", order)
	}
}
