package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/scalednative/assessment-engine/internal/scoring"
)

// Validate rejects malformed configs at construction time. The scorer never
// re-checks shapes: everything that could corrupt a session is caught here.
// Multi-select answer keys decoded from the compact array form are retagged
// in place.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("assessment id required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("assessment title required")
	}
	if len(c.Questions) == 0 {
		return errors.New("assessment must have at least one question")
	}
	if c.PassingScorePercent < 0 || c.PassingScorePercent > 100 {
		return fmt.Errorf("passing score %d outside [0,100]", c.PassingScorePercent)
	}
	if c.TimeLimitMinutes < 0 {
		return fmt.Errorf("negative time limit %d", c.TimeLimitMinutes)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("negative max attempts %d", c.MaxAttempts)
	}
	seen := make(map[string]struct{}, len(c.Questions))
	for i := range c.Questions {
		q := &c.Questions[i]
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		if err := q.validate(); err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
	}
	return nil
}

func (q *Question) validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return errors.New("id required")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return errors.New("prompt required")
	}
	if q.Points <= 0 {
		return fmt.Errorf("points must be positive, got %d", q.Points)
	}
	switch q.Type {
	case SingleChoice, Scenario:
		if len(q.Options) < 2 {
			return fmt.Errorf("need at least 2 options, got %d", len(q.Options))
		}
		if q.Correct.Kind != scoring.KindChoice {
			return errors.New("answer key must be a single option index")
		}
		if q.Correct.Choice < 0 || q.Correct.Choice >= len(q.Options) {
			return fmt.Errorf("answer key index %d out of range", q.Correct.Choice)
		}
	case MultiSelect:
		if len(q.Options) < 2 {
			return fmt.Errorf("need at least 2 options, got %d", len(q.Options))
		}
		// JSON decoding tags index arrays as order; retag as a selection set.
		if q.Correct.Kind == scoring.KindOrder {
			q.Correct = scoring.SelectionAnswer(q.Correct.Order...)
		}
		if q.Correct.Kind != scoring.KindSelection || len(q.Correct.Selection) == 0 {
			return errors.New("answer key must be a non-empty set of option indices")
		}
		seen := make(map[int]struct{}, len(q.Correct.Selection))
		for _, v := range q.Correct.Selection {
			if v < 0 || v >= len(q.Options) {
				return fmt.Errorf("answer key index %d out of range", v)
			}
			if _, dup := seen[v]; dup {
				return fmt.Errorf("answer key index %d repeated", v)
			}
			seen[v] = struct{}{}
		}
	case Ordering:
		if len(q.Options) < 2 {
			return fmt.Errorf("need at least 2 options, got %d", len(q.Options))
		}
		if q.Correct.Kind != scoring.KindOrder {
			return errors.New("answer key must be a permutation of option indices")
		}
		if err := checkPermutation(q.Correct.Order, len(q.Options)); err != nil {
			return err
		}
	case FillBlank:
		if q.Correct.Kind != scoring.KindText || strings.TrimSpace(q.Correct.Text) == "" {
			return errors.New("answer key must be a non-empty string")
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}

func checkPermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("answer key has %d entries for %d options", len(perm), n)
	}
	seen := make([]bool, n)
	for _, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("answer key index %d out of range", v)
		}
		if seen[v] {
			return fmt.Errorf("answer key index %d repeated", v)
		}
		seen[v] = true
	}
	return nil
}

// ParseAnswer decodes a learner response from its compact JSON form into the
// variant matching the question's type. Values are accepted as-is beyond
// shape; correctness is judged only at scoring time.
func ParseAnswer(q Question, raw json.RawMessage) (scoring.Answer, error) {
	switch q.Type {
	case SingleChoice, Scenario:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return scoring.Answer{}, fmt.Errorf("answer for %q must be an option index", q.ID)
		}
		return scoring.ChoiceAnswer(n), nil
	case MultiSelect:
		var arr []int
		if err := json.Unmarshal(raw, &arr); err != nil {
			return scoring.Answer{}, fmt.Errorf("answer for %q must be an index array", q.ID)
		}
		return scoring.SelectionAnswer(dedupe(arr)...), nil
	case Ordering:
		var arr []int
		if err := json.Unmarshal(raw, &arr); err != nil {
			return scoring.Answer{}, fmt.Errorf("answer for %q must be an index array", q.ID)
		}
		return scoring.OrderAnswer(arr...), nil
	case FillBlank:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return scoring.Answer{}, fmt.Errorf("answer for %q must be a string", q.ID)
		}
		return scoring.TextAnswer(s), nil
	}
	return scoring.Answer{}, fmt.Errorf("unknown question type %q", q.Type)
}

func dedupe(arr []int) []int {
	seen := make(map[int]struct{}, len(arr))
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
