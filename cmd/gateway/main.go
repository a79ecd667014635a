package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/scalednative/assessment-engine/internal/api/http"
	"github.com/scalednative/assessment-engine/internal/assessment"
	auth "github.com/scalednative/assessment-engine/internal/auth/middleware"
	"github.com/scalednative/assessment-engine/internal/config"
	"github.com/scalednative/assessment-engine/internal/content"
	"github.com/scalednative/assessment-engine/internal/db"
	"github.com/scalednative/assessment-engine/internal/rbac"
	syncx "github.com/scalednative/assessment-engine/internal/sync"
)

func main() {
	cfg := config.FromEnv()

	// --- Store ---
	var store assessment.Store
	var events *syncx.EventRepo
	if cfg.MemoryStore {
		store = assessment.NewInMemoryStore()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = assessment.NewSQLStore(dbh, cfg.DBDriver)
		events = syncx.NewEventRepo(dbh)
	}

	// --- Authored content ---
	if cfg.ContentDir != "" {
		n, err := content.Register(context.Background(), cfg.ContentDir, store)
		if err != nil {
			log.Fatalf("content load failed: %v", err)
		}
		log.Printf("loaded %d assessments from %s", n, cfg.ContentDir)
	}

	// --- Live sessions ---
	mgr := assessment.NewManager(func(rec assessment.ResultRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.SaveResult(ctx, rec); err != nil {
			log.Printf("save result %s: %v", rec.ID, err)
			return
		}
		if events != nil {
			payload, _ := json.Marshal(rec)
			if err := events.Append(ctx, syncx.Event{
				SiteID:   "local",
				Type:     syncx.EventResultRecorded,
				Key:      rec.ID,
				DataJSON: string(payload),
			}); err != nil {
				log.Printf("event append %s: %v", rec.ID, err)
			}
		}
	})

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	loginOpts := auth.LoginOpts{
		AdminUser:     cfg.AdminUser,
		AdminPassHash: cfg.AdminPassHash,
		DevLogins:     cfg.EnableDevLogins,
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, loginOpts))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Authoring
		pr.With(rbac.Require("assessment:create")).
			Post("/assessments", api.UploadAssessmentHandler(store))
		pr.With(rbac.Require("assessment:view-full")).
			Get("/assessments/{assessmentID}/full", api.GetAssessmentFullHandler(store))

		// Learner-safe catalogue
		pr.With(rbac.Require("assessment:view")).
			Get("/assessments", api.ListAssessmentsHandler(store))
		pr.With(rbac.Require("assessment:view")).
			Get("/assessments/{assessmentID}", api.GetAssessmentHandler(store))

		// Attempt flow
		pr.With(rbac.Require("session:create")).
			Post("/sessions", api.CreateSessionHandler(store, mgr))
		pr.With(rbac.Require("session:view-own")).
			Get("/sessions/{sessionID}", api.GetSessionHandler(mgr))
		pr.With(rbac.Require("session:answer")).
			Post("/sessions/{sessionID}/answers", api.RecordAnswerHandler(mgr))
		pr.With(rbac.Require("session:answer")).
			Post("/sessions/{sessionID}/toggle", api.ToggleOptionHandler(mgr))
		pr.With(rbac.Require("session:answer")).
			Post("/sessions/{sessionID}/move", api.MoveOrderItemHandler(mgr))
		pr.With(rbac.Require("session:answer")).
			Post("/sessions/{sessionID}/flags", api.ToggleFlagHandler(mgr))
		pr.With(rbac.Require("session:answer")).
			Post("/sessions/{sessionID}/navigate", api.NavigateHandler(mgr))
		pr.With(rbac.Require("session:submit")).
			Post("/sessions/{sessionID}/submit", api.SubmitSessionHandler(mgr))
		pr.With(rbac.Require("session:view-own")).
			Post("/sessions/{sessionID}/exit", api.ExitSessionHandler(mgr))
		pr.With(rbac.Require("session:view-own")).
			Delete("/sessions/{sessionID}", api.AbandonSessionHandler(mgr))
		pr.With(rbac.Require("session:view-own")).
			Get("/sessions/{sessionID}/watch", api.WatchSessionHandler(mgr))

		// Results
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results/{resultID}", api.GetResultHandler(store))
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results", api.ListResultsHandler(store))

		// Maturity questionnaire
		pr.With(rbac.Require("maturity:score")).
			Get("/maturity/questions", api.MaturityQuestionsHandler())
		pr.With(rbac.Require("maturity:score")).
			Post("/maturity/score", api.MaturityScoreHandler())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
