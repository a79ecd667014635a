package assessment

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager tracks live sessions by id. Completed attempts are handed to the
// onResult hook (persistence, event log) and kept until the learner exits.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	onResult func(ResultRecord)
	now      func() time.Time
}

func NewManager(onResult func(ResultRecord)) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		onResult: onResult,
		now:      time.Now,
	}
}

// Start opens a new attempt for a config. A retry is just another Start with
// the same config; each call owns fresh session state.
func (m *Manager) Start(cfg Config, userID string, opts ...SessionOption) (string, *Session, error) {
	id := uuid.NewString()
	hooked := append([]SessionOption{
		WithOnComplete(func(res Result) {
			if m.onResult == nil {
				return
			}
			m.onResult(ResultRecord{
				ID:           uuid.NewString(),
				AssessmentID: cfg.ID,
				UserID:       userID,
				SubmittedAt:  m.now().Unix(),
				Result:       res,
			})
		}),
	}, opts...)
	s, err := NewSession(cfg, hooked...)
	if err != nil {
		return "", nil, err
	}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return id, s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Drop abandons and forgets a session. Stopping the countdown is the only
// cleanup an attempt needs.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Abandon()
	}
}
