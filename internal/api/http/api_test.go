package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/scalednative/assessment-engine/internal/assessment"
	auth "github.com/scalednative/assessment-engine/internal/auth/middleware"
	"github.com/scalednative/assessment-engine/internal/rbac"
	"github.com/scalednative/assessment-engine/internal/scoring"
)

// asUser injects the identity the JWT middleware would have set.
func asUser(role, subject string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := rbac.WithRole(r.Context(), role)
			ctx = auth.WithSubject(ctx, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func testRouter(store assessment.Store, mgr *assessment.Manager, role, subject string) chi.Router {
	r := chi.NewRouter()
	r.Use(asUser(role, subject))
	r.Post("/assessments", UploadAssessmentHandler(store))
	r.Get("/assessments/{assessmentID}", GetAssessmentHandler(store))
	r.Get("/assessments/{assessmentID}/full", GetAssessmentFullHandler(store))
	r.Get("/assessments", ListAssessmentsHandler(store))
	r.Post("/sessions", CreateSessionHandler(store, mgr))
	r.Get("/sessions/{sessionID}", GetSessionHandler(mgr))
	r.Post("/sessions/{sessionID}/answers", RecordAnswerHandler(mgr))
	r.Post("/sessions/{sessionID}/toggle", ToggleOptionHandler(mgr))
	r.Post("/sessions/{sessionID}/move", MoveOrderItemHandler(mgr))
	r.Post("/sessions/{sessionID}/flags", ToggleFlagHandler(mgr))
	r.Post("/sessions/{sessionID}/navigate", NavigateHandler(mgr))
	r.Post("/sessions/{sessionID}/submit", SubmitSessionHandler(mgr))
	r.Post("/sessions/{sessionID}/exit", ExitSessionHandler(mgr))
	r.Get("/results", ListResultsHandler(store))
	r.Get("/results/{resultID}", GetResultHandler(store))
	return r
}

func apiConfig() assessment.Config {
	return assessment.Config{
		ID:                  "go-basics",
		Title:               "Go Basics",
		PassingScorePercent: 70,
		AllowReview:         true,
		Questions: []assessment.Question{
			{ID: "q1", Type: assessment.SingleChoice, Prompt: "Pick one",
				Options: []string{"a", "b", "c"}, Correct: scoring.ChoiceAnswer(1), Points: 2},
			{ID: "q2", Type: assessment.MultiSelect, Prompt: "Pick several",
				Options: []string{"a", "b", "c"}, Correct: scoring.SelectionAnswer(0, 2), Points: 2},
			{ID: "q3", Type: assessment.Ordering, Prompt: "Arrange",
				Options: []string{"x", "y", "z"}, Correct: scoring.OrderAnswer(2, 0, 1), Points: 2},
			{ID: "q4", Type: assessment.FillBlank, Prompt: "Fill in",
				Correct: scoring.TextAnswer("cache"), Points: 2},
		},
	}
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestAttemptFlow(t *testing.T) {
	store := assessment.NewInMemoryStore()
	mgr := assessment.NewManager(func(rec assessment.ResultRecord) {
		_ = store.SaveResult(context.Background(), rec)
	})
	author := testRouter(store, mgr, "author", "amy")
	learner := testRouter(store, mgr, "learner", "alice")

	// author uploads
	rec := do(t, author, "POST", "/assessments", apiConfig())
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", rec.Code, rec.Body.String())
	}

	// learner view is sanitized
	rec = do(t, learner, "GET", "/assessments/go-basics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get assessment: %d", rec.Code)
	}
	safe := decode[assessment.Config](t, rec)
	for _, q := range safe.Questions {
		if q.Correct.Kind != "" {
			t.Fatalf("learner view leaks key: %+v", q)
		}
	}

	// open a session
	rec = do(t, learner, "POST", "/sessions", map[string]string{"assessment_id": "go-basics"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", rec.Code, rec.Body.String())
	}
	view := decode[sessionPayload](t, rec)
	if view.SessionID == "" || view.Question == nil {
		t.Fatalf("session view = %+v", view)
	}
	if view.Question.Correct.Kind != "" {
		t.Fatal("session view leaks answer key")
	}
	sid := view.SessionID
	base := "/sessions/" + sid

	// answer q1 and q4 directly
	rec = do(t, learner, "POST", base+"/answers",
		map[string]any{"question_id": "q1", "answer": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("answer q1: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, learner, "POST", base+"/answers",
		map[string]any{"question_id": "q4", "answer": " Cache "})
	if rec.Code != http.StatusOK {
		t.Fatalf("answer q4: %d %s", rec.Code, rec.Body.String())
	}

	// build the multi-select answer by toggling
	for _, opt := range []int{0, 2} {
		rec = do(t, learner, "POST", base+"/toggle",
			map[string]any{"question_id": "q2", "option": opt})
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle %d: %d", opt, rec.Code)
		}
	}

	// arrange q3 to z,x,y (key 2,0,1) by moving items up
	for _, mv := range []struct{ from, dir int }{{2, -1}, {1, -1}} {
		rec = do(t, learner, "POST", base+"/move",
			map[string]any{"question_id": "q3", "from": mv.from, "dir": mv.dir})
		if rec.Code != http.StatusOK {
			t.Fatalf("move %+v: %d %s", mv, rec.Code, rec.Body.String())
		}
	}
	snap := decode[assessment.Snapshot](t, rec)
	if snap.AnsweredCount != 4 {
		t.Fatalf("answered = %d, want 4", snap.AnsweredCount)
	}

	// flag, review, then submit
	rec = do(t, learner, "POST", base+"/flags", map[string]string{"question_id": "q3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("flag: %d", rec.Code)
	}
	rec = do(t, learner, "POST", base+"/navigate", map[string]any{"action": "review"})
	if rec.Code != http.StatusOK {
		t.Fatalf("review: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, learner, "POST", base+"/submit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	res := decode[assessment.Result](t, rec)
	if res.Percentage != 100 || !res.Passed {
		t.Fatalf("result = %+v, want 100%% passed", res)
	}

	// answering after submission conflicts
	rec = do(t, learner, "POST", base+"/answers",
		map[string]any{"question_id": "q1", "answer": 0})
	if rec.Code != http.StatusConflict {
		t.Fatalf("answer after submit: %d, want 409", rec.Code)
	}

	// the result was persisted for the learner
	rec = do(t, learner, "GET", "/results", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list results: %d", rec.Code)
	}
	list := decode[[]assessment.ResultRecord](t, rec)
	if len(list) != 1 || list[0].UserID != "alice" {
		t.Fatalf("results = %+v", list)
	}

	// exit drops the live session, the record stays
	rec = do(t, learner, "POST", base+"/exit", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("exit: %d", rec.Code)
	}
	rec = do(t, learner, "GET", base, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after exit: %d, want 404", rec.Code)
	}
	rec = do(t, learner, "GET", "/results/"+list[0].ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get result after exit: %d", rec.Code)
	}
}

func TestResultOwnership(t *testing.T) {
	store := assessment.NewInMemoryStore()
	_ = store.SaveResult(context.Background(), assessment.ResultRecord{
		ID: "r1", AssessmentID: "a1", UserID: "alice", SubmittedAt: 10,
	})
	_ = store.SaveResult(context.Background(), assessment.ResultRecord{
		ID: "r2", AssessmentID: "a1", UserID: "bob", SubmittedAt: 20,
	})
	mgr := assessment.NewManager(nil)

	// learners only see their own submissions, whatever they ask for
	alice := testRouter(store, mgr, "learner", "alice")
	rec := do(t, alice, "GET", "/results?user_id=bob", nil)
	list := decode[[]assessment.ResultRecord](t, rec)
	if len(list) != 1 || list[0].UserID != "alice" {
		t.Fatalf("alice sees %+v", list)
	}
	rec = do(t, alice, "GET", "/results/r2", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("alice reading bob's result: %d, want 403", rec.Code)
	}

	// result:view-all roles see everything
	author := testRouter(store, mgr, "author", "amy")
	rec = do(t, author, "GET", "/results", nil)
	list = decode[[]assessment.ResultRecord](t, rec)
	if len(list) != 2 {
		t.Fatalf("author sees %d results, want 2", len(list))
	}
	rec = do(t, author, "GET", "/results/r2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("author reading bob's result: %d", rec.Code)
	}
}

func TestCreateSessionUnknownAssessment(t *testing.T) {
	store := assessment.NewInMemoryStore()
	mgr := assessment.NewManager(nil)
	learner := testRouter(store, mgr, "learner", "alice")

	rec := do(t, learner, "POST", "/sessions", map[string]string{"assessment_id": "nope"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("create session: %d, want 404", rec.Code)
	}
}
