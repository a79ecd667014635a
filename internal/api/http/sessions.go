package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scalednative/assessment-engine/internal/assessment"
	auth "github.com/scalednative/assessment-engine/internal/auth/middleware"
	"github.com/scalednative/assessment-engine/internal/scoring"
)

func CreateSessionHandler(store assessment.Store, mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AssessmentID string `json:"assessment_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.AssessmentID == "" {
			http.Error(w, "assessment_id required", 400)
			return
		}
		cfg, err := store.GetAssessmentFull(r.Context(), req.AssessmentID)
		if err != nil {
			status := 400
			if errors.Is(err, assessment.ErrAssessmentNotFound) {
				status = 404
			}
			http.Error(w, err.Error(), status)
			return
		}
		userID := auth.SubjectFromContext(r.Context())
		id, s, err := mgr.Start(cfg, userID)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sessionView(id, s))
	}
}

func GetSessionHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		_ = json.NewEncoder(w).Encode(sessionView(id, s))
	}
}

// RecordAnswerHandler stores a learner response. The value is parsed into
// the shape matching the question type; anything parseable is accepted,
// correctness is judged only at submission.
func RecordAnswerHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		var req struct {
			QuestionID string          `json:"question_id"`
			Answer     json.RawMessage `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		q, ok := questionByID(s.Config(), req.QuestionID)
		if !ok {
			http.Error(w, "unknown question", 404)
			return
		}
		ans, err := assessment.ParseAnswer(q, req.Answer)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if err := s.RecordAnswer(req.QuestionID, ans); err != nil {
			http.Error(w, err.Error(), 409)
			return
		}
		_ = json.NewEncoder(w).Encode(s.Snapshot())
	}
}

// ToggleOptionHandler flips one option of a multi-select answer.
func ToggleOptionHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		var req struct {
			QuestionID string `json:"question_id"`
			Option     int    `json:"option"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := s.ToggleOption(req.QuestionID, req.Option); err != nil {
			http.Error(w, err.Error(), 409)
			return
		}
		_ = json.NewEncoder(w).Encode(s.Snapshot())
	}
}

// MoveOrderItemHandler swaps an ordering item with its neighbor.
func MoveOrderItemHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		var req struct {
			QuestionID string `json:"question_id"`
			From       int    `json:"from"`
			Dir        int    `json:"dir"` // -1 up, +1 down
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Dir != -1 && req.Dir != 1 {
			http.Error(w, "dir must be -1 or 1", 400)
			return
		}
		if err := s.MoveOrderItem(req.QuestionID, req.From, req.Dir); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(s.Snapshot())
	}
}

func ToggleFlagHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		var req struct {
			QuestionID string `json:"question_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := s.ToggleFlag(req.QuestionID); err != nil {
			http.Error(w, err.Error(), 409)
			return
		}
		_ = json.NewEncoder(w).Encode(s.Snapshot())
	}
}

// NavigateHandler moves the cursor or switches review phase.
// Actions: next, prev, goto (with index), review, back.
func NavigateHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		var req struct {
			Action string `json:"action"`
			Index  int    `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		switch req.Action {
		case "next":
			err = s.Next()
		case "prev":
			err = s.Prev()
		case "goto":
			err = s.GoTo(req.Index)
		case "review":
			err = s.EnterReview()
		case "back":
			err = s.ExitReview()
		default:
			http.Error(w, "unknown action", 400)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 409)
			return
		}
		_ = json.NewEncoder(w).Encode(sessionView(id, s))
	}
}

func SubmitSessionHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		res, err := s.Submit()
		if err != nil {
			if errors.Is(err, assessment.ErrSubmitted) {
				// timer may have beaten the learner to it; serve the result
				if got, rerr := s.Result(); rerr == nil {
					_ = json.NewEncoder(w).Encode(got)
					return
				}
			}
			http.Error(w, err.Error(), 409)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// ExitSessionHandler signals the learner left the results screen and drops
// the live session. The persisted result remains retrievable.
func ExitSessionHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := mgr.Get(id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		s.Exit()
		mgr.Drop(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// AbandonSessionHandler discards an attempt without scoring.
func AbandonSessionHandler(mgr *assessment.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		mgr.Drop(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- helpers ---

type sessionPayload struct {
	SessionID string              `json:"session_id"`
	Snapshot  assessment.Snapshot `json:"snapshot"`
	// Question is the learner-safe question under the cursor; omitted once
	// submitted.
	Question *assessment.Question `json:"question,omitempty"`
}

func sessionView(id string, s *assessment.Session) sessionPayload {
	p := sessionPayload{SessionID: id, Snapshot: s.Snapshot()}
	if p.Snapshot.Phase != assessment.PhaseSubmitted {
		q := s.CurrentQuestion()
		q.Correct = scoring.Answer{}
		q.Explanation = ""
		p.Question = &q
	}
	return p
}

func questionByID(cfg assessment.Config, id string) (assessment.Question, bool) {
	for _, q := range cfg.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return assessment.Question{}, false
}
