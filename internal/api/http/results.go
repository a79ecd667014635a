package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scalednative/assessment-engine/internal/assessment"
	auth "github.com/scalednative/assessment-engine/internal/auth/middleware"
	"github.com/scalednative/assessment-engine/internal/rbac"
)

func GetResultHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "resultID")
		rec, err := store.GetResult(r.Context(), id)
		if err != nil {
			status := 500
			if errors.Is(err, assessment.ErrResultNotFound) {
				status = 404
			}
			http.Error(w, err.Error(), status)
			return
		}
		if !canViewResult(r, rec.UserID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// ListResultsHandler serves a learner their own submissions; roles with
// result:view-all may filter by any user or assessment.
func ListResultsHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := assessment.ResultListOpts{
			AssessmentID: r.URL.Query().Get("assessment_id"),
			UserID:       r.URL.Query().Get("user_id"),
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			opts.Limit, _ = strconv.Atoi(v)
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			opts.Offset, _ = strconv.Atoi(v)
		}
		role := rbac.RoleFromContext(r.Context())
		if !rbac.NewChecker(nil).Has(role, "result:view-all") {
			opts.UserID = auth.SubjectFromContext(r.Context())
		}
		out, err := store.ListResults(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if out == nil {
			out = []assessment.ResultRecord{}
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func canViewResult(r *http.Request, ownerID string) bool {
	if auth.SubjectFromContext(r.Context()) == ownerID {
		return true
	}
	role := rbac.RoleFromContext(r.Context())
	return rbac.NewChecker(nil).Has(role, "result:view-all")
}
