package assessment

import "github.com/scalednative/assessment-engine/internal/scoring"

type QuestionType string

const (
	SingleChoice QuestionType = "single-choice"
	MultiSelect  QuestionType = "multi-select"
	Ordering     QuestionType = "ordering"
	FillBlank    QuestionType = "fill-blank"
	// Scenario is a single-choice question with a scenario presentation.
	// Identical answer shape and scoring.
	Scenario QuestionType = "scenario"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

type Question struct {
	ID          string         `json:"id"`
	Type        QuestionType   `json:"type"`
	Prompt      string         `json:"prompt"`
	Options     []string       `json:"options,omitempty"`
	Correct     scoring.Answer `json:"correct_answer"`
	Explanation string         `json:"explanation,omitempty"`
	Difficulty  Difficulty     `json:"difficulty,omitempty"` // presentational only
	Points      int            `json:"points"`
}

type Config struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Questions           []Question `json:"questions"`
	TimeLimitMinutes    int        `json:"time_limit_minutes,omitempty"` // 0 = untimed
	PassingScorePercent int        `json:"passing_score_percent"`
	ShuffleQuestions    bool       `json:"shuffle_questions,omitempty"`
	ShowExplanations    bool       `json:"show_explanations,omitempty"`
	AllowReview         bool       `json:"allow_review,omitempty"`
	MaxAttempts         int        `json:"max_attempts,omitempty"` // advisory; the engine does not enforce it
}

// Sanitized returns a learner-safe copy with answer keys and explanations
// stripped, parity with how exams are served to students.
func (c Config) Sanitized() Config {
	out := c
	out.Questions = make([]Question, len(c.Questions))
	for i, q := range c.Questions {
		q.Correct = scoring.Answer{}
		q.Explanation = ""
		out.Questions[i] = q
	}
	return out
}

type QuestionResult struct {
	QuestionID   string          `json:"question_id"`
	Answer       *scoring.Answer `json:"answer,omitempty"` // nil when unanswered
	Correct      bool            `json:"correct"`
	PointsEarned int             `json:"points_earned"`
}

// Result is immutable once produced; one per submission.
type Result struct {
	AssessmentID   string           `json:"assessment_id,omitempty"`
	ScoreEarned    int              `json:"score_earned"`
	ScorePossible  int              `json:"score_possible"`
	Percentage     int              `json:"percentage"`
	Passed         bool             `json:"passed"`
	ElapsedSeconds int64            `json:"elapsed_seconds"`
	PerQuestion    []QuestionResult `json:"per_question"`
}

type Summary struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description,omitempty"`
	QuestionCount       int    `json:"question_count"`
	TimeLimitMinutes    int    `json:"time_limit_minutes,omitempty"`
	PassingScorePercent int    `json:"passing_score_percent"`
}

func (c Config) Summary() Summary {
	return Summary{
		ID:                  c.ID,
		Title:               c.Title,
		Description:         c.Description,
		QuestionCount:       len(c.Questions),
		TimeLimitMinutes:    c.TimeLimitMinutes,
		PassingScorePercent: c.PassingScorePercent,
	}
}
