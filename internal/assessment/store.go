package assessment

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrResultNotFound     = errors.New("result not found")
)

// ResultRecord is a persisted submission outcome.
type ResultRecord struct {
	ID           string `json:"id"`
	AssessmentID string `json:"assessment_id"`
	UserID       string `json:"user_id"`
	SubmittedAt  int64  `json:"submitted_at"`
	Result       Result `json:"result"`
}

type ResultListOpts struct {
	AssessmentID string
	UserID       string
	Limit        int
	Offset       int
}

type Store interface {
	PutAssessment(ctx context.Context, cfg Config) error
	// GetAssessment is learner-safe: answer keys and explanations stripped.
	GetAssessment(ctx context.Context, id string) (Config, error)
	// GetAssessmentFull returns the complete document, for authors and for
	// opening sessions.
	GetAssessmentFull(ctx context.Context, id string) (Config, error)
	ListAssessments(ctx context.Context) ([]Summary, error)

	SaveResult(ctx context.Context, rec ResultRecord) error
	GetResult(ctx context.Context, id string) (ResultRecord, error)
	ListResults(ctx context.Context, opts ResultListOpts) ([]ResultRecord, error)
}

type memoryStore struct {
	mu          sync.RWMutex
	assessments map[string]Config
	results     map[string]ResultRecord
}

func NewInMemoryStore() Store {
	return &memoryStore{
		assessments: map[string]Config{},
		results:     map[string]ResultRecord{},
	}
}

func (m *memoryStore) PutAssessment(_ context.Context, cfg Config) error {
	if err := (&cfg).Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments[cfg.ID] = cfg
	return nil
}

func (m *memoryStore) GetAssessment(ctx context.Context, id string) (Config, error) {
	cfg, err := m.GetAssessmentFull(ctx, id)
	if err != nil {
		return Config{}, err
	}
	return cfg.Sanitized(), nil
}

func (m *memoryStore) GetAssessmentFull(_ context.Context, id string) (Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.assessments[id]
	if !ok {
		return Config{}, ErrAssessmentNotFound
	}
	return cfg, nil
}

func (m *memoryStore) ListAssessments(_ context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Summary, 0, len(m.assessments))
	for _, cfg := range m.assessments {
		out = append(out, cfg.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) SaveResult(_ context.Context, rec ResultRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[rec.ID] = rec
	return nil
}

func (m *memoryStore) GetResult(_ context.Context, id string) (ResultRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.results[id]
	if !ok {
		return ResultRecord{}, ErrResultNotFound
	}
	return rec, nil
}

func (m *memoryStore) ListResults(_ context.Context, opts ResultListOpts) ([]ResultRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ResultRecord, 0, len(m.results))
	for _, rec := range m.results {
		if opts.AssessmentID != "" && rec.AssessmentID != opts.AssessmentID {
			continue
		}
		if opts.UserID != "" && rec.UserID != opts.UserID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt > out[j].SubmittedAt })
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []ResultRecord{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}
