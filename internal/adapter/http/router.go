package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arfin-foysal/crypto-sub001/internal/adapter/http/handler"
	"github.com/arfin-foysal/crypto-sub001/internal/adapter/http/middleware"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/auth"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	UserHandler        *handler.UserHandler
	AuthHandler        *handler.AuthHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RequestLogger      *middleware.LoggingMiddleware
	RateLimiter        *middleware.RateLimiter
	JWTManager         *auth.JWTManager
	AuthEnabled        bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RequestLogger != nil {
		r.Use(cfg.RequestLogger.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	authn := authMiddleware(cfg)
	admin := adminMiddleware(cfg)
	idem := idempotencyMiddleware(cfg)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Login stays outside the idempotency wrapper; replaying a cached
		// token response would defeat credential checks.
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Deposits
		r.Route("/deposits", func(r chi.Router) {
			r.Use(idem)
			r.Use(authn)
			r.Post("/", cfg.TransactionHandler.CreateDeposit)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.With(admin).Patch("/{id}/status", cfg.TransactionHandler.UpdateDepositStatus)
		})

		// Withdrawals
		r.Route("/withdrawals", func(r chi.Router) {
			r.Use(idem)
			r.Use(authn)
			r.Post("/", cfg.TransactionHandler.CreateWithdrawal)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.With(admin).Patch("/{id}/status", cfg.TransactionHandler.UpdateWithdrawalStatus)
		})

		// Transactions (read-only, either type)
		r.With(authn).Get("/transactions/{id}", cfg.TransactionHandler.Get)

		// Users; registration stays open, the rest requires authentication.
		r.Route("/users", func(r chi.Router) {
			r.Use(idem)
			r.Post("/", cfg.UserHandler.Register)
			r.With(authn, admin).Get("/", cfg.UserHandler.List)
			r.With(authn).Get("/{id}", cfg.UserHandler.Get)
			r.With(authn).Get("/{id}/transactions", cfg.TransactionHandler.ListByUser)
			r.With(authn, admin).Patch("/{id}/activate", cfg.UserHandler.Activate)
			r.With(authn, admin).Patch("/{id}/freeze", cfg.UserHandler.Freeze)
		})
	})

	return r
}

func authMiddleware(cfg RouterConfig) func(http.Handler) http.Handler {
	if !cfg.AuthEnabled || cfg.JWTManager == nil {
		return passthrough
	}

	return middleware.AuthMiddleware(cfg.JWTManager)
}

func idempotencyMiddleware(cfg RouterConfig) func(http.Handler) http.Handler {
	if cfg.IdempotencyStore == nil {
		return passthrough
	}

	return middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap
}

func adminMiddleware(cfg RouterConfig) func(http.Handler) http.Handler {
	if !cfg.AuthEnabled || cfg.JWTManager == nil {
		return passthrough
	}

	return middleware.RequireAdmin
}

func passthrough(next http.Handler) http.Handler { return next }
