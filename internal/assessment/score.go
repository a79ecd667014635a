package assessment

import (
	"math"

	"github.com/scalednative/assessment-engine/internal/scoring"
)

// Score computes a Result from a validated config and whatever answers were
// recorded. It is deterministic and total: missing answers score zero, and
// identical inputs always produce identical results. Per-question entries
// follow the authored question order regardless of presentation shuffling.
func Score(cfg Config, answers map[string]scoring.Answer, elapsedSeconds int64, sc *scoring.Scorer) Result {
	if sc == nil {
		sc = scoring.NewScorer()
	}
	res := Result{
		AssessmentID:   cfg.ID,
		ElapsedSeconds: elapsedSeconds,
		PerQuestion:    make([]QuestionResult, 0, len(cfg.Questions)),
	}
	for _, q := range cfg.Questions {
		ans, answered := answers[q.ID]
		out := sc.ScoreQuestion(scoring.Q{
			ID:     q.ID,
			Type:   string(q.Type),
			Points: q.Points,
			Key:    q.Correct,
		}, ans, answered)

		qr := QuestionResult{
			QuestionID:   q.ID,
			Correct:      out.Correct,
			PointsEarned: out.PointsEarned,
		}
		if answered {
			a := ans
			qr.Answer = &a
		}
		res.PerQuestion = append(res.PerQuestion, qr)
		res.ScorePossible += q.Points
		res.ScoreEarned += out.PointsEarned
	}
	// Validation guarantees ScorePossible > 0; the guard keeps Score total
	// even on a config that skipped validation.
	if res.ScorePossible > 0 {
		res.Percentage = int(math.Round(100 * float64(res.ScoreEarned) / float64(res.ScorePossible)))
	}
	res.Passed = res.Percentage >= cfg.PassingScorePercent
	return res
}
