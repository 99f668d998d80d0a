package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mindarch/studyplan/internal/api/handlers"
	"github.com/mindarch/studyplan/internal/api/middleware"
	"github.com/mindarch/studyplan/internal/config"
	"github.com/mindarch/studyplan/internal/pkg/logger"
	"github.com/mindarch/studyplan/internal/pkg/metrics"
)

// Handlers groups the handlers wired into the route table
type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Plan   *handlers.PlanHandler
}

// New builds the HTTP route table
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(metrics.Middleware())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/health", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())

		r.Post("/api/signup", h.Auth.Signup)
		r.Post("/api/login", h.Auth.Login)

		r.With(middleware.OptionalAuth(cfg.Auth.JWTSecret)).
			Get("/api/check_session", h.Auth.CheckSession)
	})

	// Protected routes (require an authenticated session)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.Auth.JWTSecret))

		r.Post("/api/logout", h.Auth.Logout)
		r.Get("/api/plan", h.Plan.Get)
		r.Post("/api/plan", h.Plan.Save)
		r.Post("/generate", h.Plan.Generate)
	})

	return r
}
