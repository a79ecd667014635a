package assessment

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/scalednative/assessment-engine/internal/scoring"
)

type Phase string

const (
	PhaseAnswering Phase = "answering"
	PhaseReviewing Phase = "reviewing"
	PhaseSubmitted Phase = "submitted"
)

var (
	ErrSubmitted       = errors.New("attempt already submitted")
	ErrIndexOutOfRange = errors.New("question index out of range")
	ErrReviewLocked    = errors.New("review reachable only from the last question")
	ErrNoResult        = errors.New("attempt not submitted yet")
)

type SessionOption func(*Session)

// WithOnComplete registers the callback fired exactly once per attempt, at
// the submitted transition, whether manual or timer-forced.
func WithOnComplete(fn func(Result)) SessionOption { return func(s *Session) { s.onComplete = fn } }

// WithOnExit registers the notification fired when the learner leaves the
// results screen. Carries no data.
func WithOnExit(fn func()) SessionOption { return func(s *Session) { s.onExit = fn } }

func WithScorer(sc *scoring.Scorer) SessionOption { return func(s *Session) { s.scorer = sc } }

// WithTickInterval overrides the one-second countdown period. Tests use
// millisecond ticks to simulate expiry without waiting wall-clock time.
func WithTickInterval(d time.Duration) SessionOption { return func(s *Session) { s.tick = d } }

// WithClock overrides the time source used for elapsed-time measurement.
func WithClock(now func() time.Time) SessionOption { return func(s *Session) { s.now = now } }

// WithShuffleSeed pins the presentation shuffle for reproducible sessions.
func WithShuffleSeed(seed int64) SessionOption { return func(s *Session) { s.seed = seed } }

// Session owns the mutable state of one attempt: the answer store, flags,
// cursor, phase and countdown. All state transitions are serialized through
// one mutex; the phase guard in finishLocked enforces at-most-one submission
// even when the countdown and a manual submit race.
type Session struct {
	mu sync.Mutex

	cfg     Config
	order   []int // presentation order over cfg.Questions
	byID    map[string]int
	answers map[string]scoring.Answer
	flagged map[string]struct{}
	current int
	phase   Phase
	result  *Result

	startedAt time.Time
	now       func() time.Time
	tick      time.Duration
	seed      int64
	countdown *Countdown
	scorer    *scoring.Scorer

	onComplete func(Result)
	onExit     func()
}

// NewSession validates the config and opens a fresh attempt in the answering
// phase. A timed config starts its countdown immediately.
func NewSession(cfg Config, opts ...SessionOption) (*Session, error) {
	if err := (&cfg).Validate(); err != nil {
		return nil, fmt.Errorf("invalid assessment config: %w", err)
	}
	s := &Session{
		cfg:     cfg,
		byID:    make(map[string]int, len(cfg.Questions)),
		answers: make(map[string]scoring.Answer),
		flagged: make(map[string]struct{}),
		phase:   PhaseAnswering,
		now:     time.Now,
		tick:    time.Second,
		seed:    time.Now().UnixNano(),
		scorer:  scoring.NewScorer(),
	}
	for _, o := range opts {
		o(s)
	}
	for i, q := range cfg.Questions {
		s.byID[q.ID] = i
	}
	s.order = make([]int, len(cfg.Questions))
	for i := range s.order {
		s.order[i] = i
	}
	if cfg.ShuffleQuestions {
		rng := rand.New(rand.NewSource(s.seed))
		rng.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}
	s.startedAt = s.now()
	if cfg.TimeLimitMinutes > 0 {
		s.countdown = startCountdown(int64(cfg.TimeLimitMinutes)*60, s.tick, s.handleExpiry)
	}
	return s, nil
}

func (s *Session) Config() Config { return s.cfg }

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Len() int { return len(s.cfg.Questions) }

// CurrentIndex is the cursor into the presentation order.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentQuestion returns the question under the cursor, answer key included;
// callers serving learners sanitize before rendering.
func (s *Session) CurrentQuestion() Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Questions[s.order[s.current]]
}

// RemainingSeconds reports the countdown, or false for an untimed session.
func (s *Session) RemainingSeconds() (int64, bool) {
	if s.countdown == nil {
		return 0, false
	}
	return s.countdown.Remaining(), true
}

// RecordAnswer overwrites the stored answer unconditionally. No validation
// against the answer key happens here; a stored value is never "invalid".
func (s *Session) RecordAnswer(questionID string, ans scoring.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	s.answers[questionID] = ans
	return nil
}

// ToggleOption flips membership of one option in a multi-select answer.
func (s *Session) ToggleOption(questionID string, option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	cur := s.answers[questionID]
	var sel []int
	if cur.Kind == scoring.KindSelection {
		sel = cur.Selection
	}
	s.answers[questionID] = scoring.SelectionAnswer(scoring.ToggleIndex(sel, option)...)
	return nil
}

// MoveOrderItem swaps the item at position from with its neighbor (dir -1
// moves up, +1 moves down) and stores the re-derived permutation. Moves past
// either end are no-ops. An unanswered ordering question starts from the
// on-screen identity order.
func (s *Session) MoveOrderItem(questionID string, from, dir int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	qi, ok := s.byID[questionID]
	if !ok {
		return fmt.Errorf("unknown question %q", questionID)
	}
	n := len(s.cfg.Questions[qi].Options)
	if from < 0 || from >= n {
		return ErrIndexOutOfRange
	}
	perm := make([]int, n)
	if cur := s.answers[questionID]; cur.Kind == scoring.KindOrder && len(cur.Order) == n {
		copy(perm, cur.Order)
	} else {
		for i := range perm {
			perm[i] = i
		}
	}
	to := from + dir
	if to >= 0 && to < n {
		perm[from], perm[to] = perm[to], perm[from]
	}
	s.answers[questionID] = scoring.OrderAnswer(perm...)
	return nil
}

// ToggleFlag marks or unmarks a question for later review. Orthogonal to the
// answered/unanswered state.
func (s *Session) ToggleFlag(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if _, ok := s.flagged[questionID]; ok {
		delete(s.flagged, questionID)
	} else {
		s.flagged[questionID] = struct{}{}
	}
	return nil
}

func (s *Session) Flagged(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.flagged[questionID]
	return ok
}

// GoTo moves the cursor to a presentation index. From review this is the
// back-edge into answering; stored answers are untouched.
func (s *Session) GoTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if index < 0 || index >= len(s.order) {
		return ErrIndexOutOfRange
	}
	s.current = index
	s.phase = PhaseAnswering
	return nil
}

// Next advances the cursor; a step past the last question is a no-op (the
// learner enters review from there instead).
func (s *Session) Next() error { return s.step(1) }

// Prev steps the cursor back, clamped at the first question.
func (s *Session) Prev() error { return s.step(-1) }

func (s *Session) step(dir int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	next := s.current + dir
	if next >= 0 && next < len(s.order) {
		s.current = next
	}
	return nil
}

// EnterReview transitions to the review phase. Reachable from the last
// question, or from anywhere when the config allows review.
func (s *Session) EnterReview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if !s.cfg.AllowReview && s.current != len(s.order)-1 {
		return ErrReviewLocked
	}
	s.phase = PhaseReviewing
	return nil
}

// ExitReview returns to answering at the current cursor.
func (s *Session) ExitReview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	s.phase = PhaseAnswering
	return nil
}

type ReviewEntry struct {
	Index      int    `json:"index"`
	QuestionID string `json:"question_id"`
	Answered   bool   `json:"answered"`
	Flagged    bool   `json:"flagged"`
}

// ReviewSheet lists one entry per question in presentation order. Flagged is
// an overlay, not exclusive with answered/unanswered.
func (s *Session) ReviewSheet() []ReviewEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewSheetLocked()
}

func (s *Session) reviewSheetLocked() []ReviewEntry {
	out := make([]ReviewEntry, len(s.order))
	for i, qi := range s.order {
		id := s.cfg.Questions[qi].ID
		_, answered := s.answers[id]
		_, flag := s.flagged[id]
		out[i] = ReviewEntry{Index: i, QuestionID: id, Answered: answered, Flagged: flag}
	}
	return out
}

// Submit scores the attempt and transitions to submitted. The second caller,
// whether learner or countdown, gets ErrSubmitted and no callback fires for
// it.
func (s *Session) Submit() (Result, error) {
	s.mu.Lock()
	res, err := s.finishLocked()
	s.mu.Unlock()
	if err != nil {
		return Result{}, err
	}
	if s.onComplete != nil {
		s.onComplete(res)
	}
	return res, nil
}

// handleExpiry is the countdown path: review is bypassed and whatever
// answers exist at this instant are scored.
func (s *Session) handleExpiry() {
	s.mu.Lock()
	res, err := s.finishLocked()
	s.mu.Unlock()
	if err != nil {
		return
	}
	if s.onComplete != nil {
		s.onComplete(res)
	}
}

func (s *Session) finishLocked() (Result, error) {
	if s.phase == PhaseSubmitted {
		return Result{}, ErrSubmitted
	}
	if s.countdown != nil {
		s.countdown.Stop()
	}
	elapsed := int64(s.now().Sub(s.startedAt) / time.Second)
	res := Score(s.cfg, s.answers, elapsed, s.scorer)
	s.phase = PhaseSubmitted
	s.result = &res
	return res, nil
}

// Result returns the outcome of a submitted attempt.
func (s *Session) Result() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, ErrNoResult
	}
	return *s.result, nil
}

// Exit signals that the learner left the results screen.
func (s *Session) Exit() {
	if s.onExit != nil {
		s.onExit()
	}
}

// Abandon discards the attempt. The only cleanup obligation is stopping the
// countdown so no auto-submit fires for a dead session.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countdown != nil {
		s.countdown.Stop()
	}
}

// Snapshot is the session state served to clients and streamed over the
// countdown watch socket.
type Snapshot struct {
	Phase            Phase         `json:"phase"`
	CurrentIndex     int           `json:"current_index"`
	QuestionCount    int           `json:"question_count"`
	AnsweredCount    int           `json:"answered_count"`
	RemainingSeconds *int64        `json:"remaining_seconds,omitempty"`
	Review           []ReviewEntry `json:"review"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Phase:         s.phase,
		CurrentIndex:  s.current,
		QuestionCount: len(s.order),
		AnsweredCount: len(s.answers),
		Review:        s.reviewSheetLocked(),
	}
	if s.countdown != nil {
		r := s.countdown.Remaining()
		snap.RemainingSeconds = &r
	}
	return snap
}
