package maturity

import "math"

// CalculateLevel maps answered option scores (question id → score 1..5) to a
// maturity level: the rounded mean, clamped to [1,5]. No answers means
// level 1.
func CalculateLevel(answers map[string]int) int {
	if len(answers) == 0 {
		return 1
	}
	sum := 0
	for _, s := range answers {
		sum += s
	}
	avg := float64(sum) / float64(len(answers))
	return clampLevel(int(math.Round(avg)))
}

// LevelFor returns the ladder entry for a level, clamping out-of-range input.
func LevelFor(level int) Level {
	return Levels[clampLevel(level)-1]
}

// CategoryBreakdown averages answered scores per category. Categories with
// no answered question are omitted.
func CategoryBreakdown(answers map[string]int) map[Category]float64 {
	sums := map[Category]int{}
	counts := map[Category]int{}
	for _, q := range Questions {
		s, ok := answers[q.ID]
		if !ok {
			continue
		}
		sums[q.Category] += s
		counts[q.Category]++
	}
	out := make(map[Category]float64, len(sums))
	for cat, sum := range sums {
		out[cat] = float64(sum) / float64(counts[cat])
	}
	return out
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}
