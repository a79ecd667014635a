package scoring

import (
	"math"
	"strings"
)

// Q is a minimal view of a question needed for scoring.
// Keep this in sync with whatever fields the assessment model uses.
type Q struct {
	ID     string
	Type   string
	Points int
	Key    Answer
}

// Outcome is the result of scoring a single question response.
type Outcome struct {
	Correct      bool
	PointsEarned int
}

// Strategy scores a single question.
type Strategy interface {
	Score(q Q, ans Answer) Outcome
}

// Scorer routes by question type to the correct Strategy.
type Scorer struct {
	strategies map[string]Strategy
}

type Option func(*config)

type config struct {
	PartialSelection bool // fractional credit for multi-select without wrong picks
	PartialOrdering  bool // fractional credit per correctly placed item
}

// WithPartialSelection awards fractional multi-select credit when every
// picked option is correct but some are missing. Off by default: a single
// wrong or missing checkbox fails the whole question.
func WithPartialSelection(b bool) Option { return func(c *config) { c.PartialSelection = b } }

// WithPartialOrdering awards credit per correctly placed item. Off by
// default: any transposition fails the whole question.
func WithPartialOrdering(b bool) Option { return func(c *config) { c.PartialOrdering = b } }

// NewScorer installs built-in strategies.
func NewScorer(opts ...Option) *Scorer {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	return &Scorer{
		strategies: map[string]Strategy{
			"single-choice": choiceStrategy{},
			"scenario":      choiceStrategy{},
			"multi-select":  selectionStrategy{partial: cfg.PartialSelection},
			"ordering":      orderingStrategy{partial: cfg.PartialOrdering},
			"fill-blank":    textStrategy{},
		},
	}
}

// ScoreQuestion scores one recorded response. An unanswered question is
// incorrect with zero points; there is no error path here.
func (s *Scorer) ScoreQuestion(q Q, ans Answer, answered bool) Outcome {
	if !answered {
		return Outcome{}
	}
	st, ok := s.strategies[q.Type]
	if !ok {
		return Outcome{}
	}
	return st.Score(q, ans)
}

// --- Strategies ---

type choiceStrategy struct{}

func (choiceStrategy) Score(q Q, ans Answer) Outcome {
	if ans.Kind != KindChoice || ans.Choice != q.Key.Choice {
		return Outcome{}
	}
	return Outcome{Correct: true, PointsEarned: q.Points}
}

type selectionStrategy struct{ partial bool }

func (s selectionStrategy) Score(q Q, ans Answer) Outcome {
	if ans.Kind != KindSelection {
		return Outcome{}
	}
	want := toSet(q.Key.Selection)
	got := toSet(ans.Selection)
	if setEqual(want, got) {
		return Outcome{Correct: true, PointsEarned: q.Points}
	}
	if !s.partial || len(want) == 0 {
		return Outcome{}
	}
	// No credit at all once a wrong option is picked.
	inter := 0
	for v := range got {
		if _, ok := want[v]; !ok {
			return Outcome{}
		}
		inter++
	}
	pts := int(math.Round(float64(q.Points) * float64(inter) / float64(len(want))))
	return Outcome{PointsEarned: pts}
}

type orderingStrategy struct{ partial bool }

func (s orderingStrategy) Score(q Q, ans Answer) Outcome {
	if ans.Kind != KindOrder || len(ans.Order) != len(q.Key.Order) {
		return Outcome{}
	}
	placed := 0
	for i, v := range q.Key.Order {
		if ans.Order[i] == v {
			placed++
		}
	}
	if placed == len(q.Key.Order) {
		return Outcome{Correct: true, PointsEarned: q.Points}
	}
	if !s.partial || len(q.Key.Order) == 0 {
		return Outcome{}
	}
	pts := int(math.Round(float64(q.Points) * float64(placed) / float64(len(q.Key.Order))))
	return Outcome{PointsEarned: pts}
}

type textStrategy struct{}

func (textStrategy) Score(q Q, ans Answer) Outcome {
	if ans.Kind != KindText {
		return Outcome{}
	}
	if normalize(ans.Text) != normalize(q.Key.Text) {
		return Outcome{}
	}
	return Outcome{Correct: true, PointsEarned: q.Points}
}

// normalize casefolds and trims surrounding whitespace. Deliberately no
// fuzzy matching: "Paris", " paris " and "PARIS" are equal, "Pariss" is not.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// helpers

func toSet(arr []int) map[int]struct{} {
	m := make(map[int]struct{}, len(arr))
	for _, v := range arr {
		m[v] = struct{}{}
	}
	return m
}

func setEqual(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
