package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/metrics"
	"github.com/sevigo/code-reviewer/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, reviewHandler *handler.ReviewHandler, m *metrics.Metrics, sup *Supervisor, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(m.Middleware)
	r.Use(FailFast(sup, m, logger))
	r.Use(CORS(cfg.Server.CORSAllowedOrigin))

	r.Get("/health", handler.Health)
	r.Method("GET", "/metrics", m.Handler())

	r.Route("/ai", func(r chi.Router) {
		r.Post("/get-review", reviewHandler.Handle)
	})

	return r
}
