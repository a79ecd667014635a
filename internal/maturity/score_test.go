package maturity

import (
	"math"
	"testing"
)

func TestCalculateLevel(t *testing.T) {
	cases := []struct {
		name    string
		answers map[string]int
		want    int
	}{
		{"no answers", nil, 1},
		{"all ones", map[string]int{"q1": 1, "q2": 1}, 1},
		{"all fives", map[string]int{"q1": 5, "q2": 5, "q3": 5}, 5},
		{"rounds up", map[string]int{"q1": 3, "q2": 4}, 4}, // 3.5 → 4
		{"rounds down", map[string]int{"q1": 3, "q2": 3, "q3": 4}, 3},
		{"clamps high", map[string]int{"q1": 9}, 5},
		{"clamps low", map[string]int{"q1": 0}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateLevel(tc.answers); got != tc.want {
				t.Fatalf("CalculateLevel(%v) = %d, want %d", tc.answers, got, tc.want)
			}
		})
	}
}

func TestLevelForClamps(t *testing.T) {
	if got := LevelFor(0); got.Level != 1 {
		t.Fatalf("LevelFor(0).Level = %d, want 1", got.Level)
	}
	if got := LevelFor(99); got.Level != 5 {
		t.Fatalf("LevelFor(99).Level = %d, want 5", got.Level)
	}
	for i := 1; i <= 5; i++ {
		lv := LevelFor(i)
		if lv.Level != i {
			t.Fatalf("LevelFor(%d).Level = %d", i, lv.Level)
		}
		if lv.Name == "" || len(lv.Characteristics) == 0 {
			t.Fatalf("level %d entry incomplete: %+v", i, lv)
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	// q1 and q10 are strategy, q2 is skills.
	answers := map[string]int{"q1": 2, "q10": 4, "q2": 5}
	got := CategoryBreakdown(answers)

	if v, ok := got[Strategy]; !ok || math.Abs(v-3.0) > 1e-9 {
		t.Fatalf("strategy mean = %v, want 3.0", v)
	}
	if v, ok := got[Skills]; !ok || math.Abs(v-5.0) > 1e-9 {
		t.Fatalf("skills mean = %v, want 5.0", v)
	}
	if _, ok := got[Tools]; ok {
		t.Fatal("unanswered category should be omitted")
	}
}

func TestQuestionnaireShape(t *testing.T) {
	if len(Questions) != 10 {
		t.Fatalf("questionnaire has %d questions, want 10", len(Questions))
	}
	seen := map[string]bool{}
	for _, q := range Questions {
		if seen[q.ID] {
			t.Fatalf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) != 5 {
			t.Fatalf("question %s has %d options, want 5", q.ID, len(q.Options))
		}
		for i, o := range q.Options {
			if o.Score != i+1 {
				t.Fatalf("question %s option %d score = %d, want %d", q.ID, i, o.Score, i+1)
			}
		}
	}
}
