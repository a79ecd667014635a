package http

import (
	"encoding/json"
	"net/http"

	"github.com/scalednative/assessment-engine/internal/maturity"
)

func MaturityQuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(maturity.Questions)
	}
}

// MaturityScoreHandler maps questionnaire answers (question id → option
// score) to a maturity level with its category breakdown.
func MaturityScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers map[string]int `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		level := maturity.CalculateLevel(req.Answers)
		resp := struct {
			Level     int                           `json:"level"`
			Detail    maturity.Level                `json:"detail"`
			Breakdown map[maturity.Category]float64 `json:"breakdown"`
		}{
			Level:     level,
			Detail:    maturity.LevelFor(level),
			Breakdown: maturity.CategoryBreakdown(req.Answers),
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
