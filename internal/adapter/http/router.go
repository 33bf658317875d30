package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rk/lifeadmin/internal/adapter/http/handler"
	"github.com/rk/lifeadmin/internal/adapter/http/middleware"
	"github.com/rk/lifeadmin/internal/infrastructure/auth"
	"github.com/rk/lifeadmin/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	AssetHandler       *handler.AssetHandler
	TransactionHandler *handler.TransactionHandler
	ReminderHandler    *handler.ReminderHandler
	SyncHandler        *handler.SyncHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	LoggingMiddleware  *middleware.LoggingMiddleware
	RateLimiter        *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Wrap)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.Me)

			// Assets
			r.Route("/assets", func(r chi.Router) {
				r.Post("/", cfg.AssetHandler.Create)
				r.Get("/", cfg.AssetHandler.List)
				r.Get("/summary", cfg.AssetHandler.Summary)
				r.Get("/{id}", cfg.AssetHandler.Get)
				r.Patch("/{id}", cfg.AssetHandler.Update)
			})

			// Transactions
			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", cfg.TransactionHandler.Create)
				r.Get("/", cfg.TransactionHandler.List)
				r.Get("/{id}", cfg.TransactionHandler.Get)
				r.Patch("/{id}", cfg.TransactionHandler.Update)
				r.Delete("/{id}", cfg.TransactionHandler.Delete)
			})

			// Reminders
			r.Route("/reminders", func(r chi.Router) {
				r.Post("/", cfg.ReminderHandler.Create)
				r.Get("/", cfg.ReminderHandler.List)
				r.Get("/{id}", cfg.ReminderHandler.Get)
				r.Patch("/{id}", cfg.ReminderHandler.Update)
				r.Delete("/{id}", cfg.ReminderHandler.Delete)
				r.Post("/{id}/complete", cfg.ReminderHandler.Complete)
			})

			// Sync status
			r.Get("/sync/{collection}/{id}", cfg.SyncHandler.Get)
		})
	})

	return r
}
