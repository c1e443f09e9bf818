// Package api provides the HTTP API for CargoScope.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cargoscope/cargoscope/internal/api/handler"
	"github.com/cargoscope/cargoscope/internal/api/middleware"
	"github.com/cargoscope/cargoscope/internal/auth"
	"github.com/cargoscope/cargoscope/internal/emissions"
	"github.com/cargoscope/cargoscope/internal/refdata"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Tokens      *auth.TokenService
	Estimator   *emissions.Service
	Tables      *refdata.Tables
	Providers   []handler.ProviderProbe
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "cargoscope-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction

	estimateHandler := handler.NewEstimateHandler(cfg.Estimator, cfg.Logger)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Tables, cfg.Providers)

	serviceAuth := middleware.ServiceAuth(cfg.Tokens)

	// Rate limits per endpoint category
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Estimate compute can fan out to external providers, so it gets
		// the strict limit.
		r.With(expensiveRateLimit).Post("/estimates:compute", estimateHandler.ComputeEstimate)

		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires a service token
			r.With(serviceAuth, standardRateLimit).Get("/status", opsHandler.SystemStatus)
		})
	})

	return r
}
