package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind tags the payload carried by an Answer.
type Kind string

const (
	KindChoice    Kind = "choice"    // single option index (single-choice, scenario)
	KindSelection Kind = "selection" // set of option indices (multi-select)
	KindOrder     Kind = "order"     // permutation of option indices (ordering)
	KindText      Kind = "text"      // free text (fill-blank)
)

// Answer is a learner response or an answer key. The tag keeps the scorer
// from casting across question kinds.
type Answer struct {
	Kind      Kind
	Choice    int
	Selection []int
	Order     []int
	Text      string
}

func ChoiceAnswer(i int) Answer         { return Answer{Kind: KindChoice, Choice: i} }
func SelectionAnswer(idx ...int) Answer { return Answer{Kind: KindSelection, Selection: idx} }
func OrderAnswer(perm ...int) Answer    { return Answer{Kind: KindOrder, Order: perm} }
func TextAnswer(s string) Answer        { return Answer{Kind: KindText, Text: s} }

// ToggleIndex adds i to the selection set if absent, removes it otherwise.
// Order of accumulation is irrelevant for scoring; only membership counts.
func ToggleIndex(sel []int, i int) []int {
	out := make([]int, 0, len(sel)+1)
	removed := false
	for _, v := range sel {
		if v == i {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, i)
	}
	return out
}

// MarshalJSON writes the compact authored form: a bare number, an index
// array, or a string, matching the answer-key shape of content documents.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case "":
		// sanitized questions carry no key
		return []byte("null"), nil
	case KindChoice:
		return json.Marshal(a.Choice)
	case KindSelection:
		return json.Marshal(a.Selection)
	case KindOrder:
		return json.Marshal(a.Order)
	case KindText:
		return json.Marshal(a.Text)
	}
	return nil, fmt.Errorf("answer kind %q not marshalable", a.Kind)
}

// UnmarshalJSON accepts the compact form. Arrays decode as KindOrder;
// config validation retags selection keys once the question type is known.
func (a *Answer) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = Answer{}
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*a = ChoiceAnswer(n)
		return nil
	}
	var arr []int
	if err := json.Unmarshal(b, &arr); err == nil {
		*a = OrderAnswer(arr...)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = TextAnswer(s)
		return nil
	}
	return errors.New("answer must be a number, an index array, or a string")
}
