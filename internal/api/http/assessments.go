package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scalednative/assessment-engine/internal/assessment"
)

func UploadAssessmentHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg assessment.Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := store.PutAssessment(r.Context(), cfg); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(cfg.Summary())
	}
}

// GetAssessmentHandler serves the learner-safe document: answer keys and
// explanations stripped.
func GetAssessmentHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "assessmentID")
		cfg, err := store.GetAssessment(r.Context(), id)
		if err != nil {
			status := 500
			if errors.Is(err, assessment.ErrAssessmentNotFound) {
				status = 404
			}
			http.Error(w, err.Error(), status)
			return
		}
		_ = json.NewEncoder(w).Encode(cfg)
	}
}

// GetAssessmentFullHandler serves the complete document, keys included.
// Author/admin only; the router guards it.
func GetAssessmentFullHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "assessmentID")
		cfg, err := store.GetAssessmentFull(r.Context(), id)
		if err != nil {
			status := 500
			if errors.Is(err, assessment.ErrAssessmentNotFound) {
				status = 404
			}
			http.Error(w, err.Error(), status)
			return
		}
		_ = json.NewEncoder(w).Encode(cfg)
	}
}

func ListAssessmentsHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.ListAssessments(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if out == nil {
			out = []assessment.Summary{}
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
