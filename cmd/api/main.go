// Package main provides the entrypoint for the CargoScope API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoscope/cargoscope/internal/api"
	"github.com/cargoscope/cargoscope/internal/api/handler"
	"github.com/cargoscope/cargoscope/internal/api/middleware"
	"github.com/cargoscope/cargoscope/internal/auth"
	"github.com/cargoscope/cargoscope/internal/config"
	"github.com/cargoscope/cargoscope/internal/database"
	"github.com/cargoscope/cargoscope/internal/emissions"
	geocodemapbox "github.com/cargoscope/cargoscope/internal/geocode/mapbox"
	"github.com/cargoscope/cargoscope/internal/location"
	"github.com/cargoscope/cargoscope/internal/provider/resilience"
	"github.com/cargoscope/cargoscope/internal/refdata"
	"github.com/cargoscope/cargoscope/internal/routing/mapbox"
	"github.com/cargoscope/cargoscope/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "cargoscope-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting CargoScope API")

	cfg := config.FromEnv()

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		SampleRatio:    cfg.Telemetry.SampleRatio,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Load reference data
	tables, err := loadRefdata(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load reference data")
	}
	log.Info().
		Str("source", cfg.RefdataSource).
		Int("locodes", tables.Locodes.Len()).
		Int("airports", tables.Airports.Len()).
		Int("emission_factors", tables.Factors.Len()).
		Int("electricity_intensity", tables.Intensity.Len()).
		Msg("reference data loaded")

	resolverCfg := location.ResolverConfig{
		Locodes:  tables.Locodes,
		Airports: tables.Airports,
		Logger:   log,
	}
	serviceCfg := emissions.ServiceConfig{
		Factors:   tables.Factors,
		Intensity: tables.Intensity,
		Logger:    log,
	}

	// Mapbox providers. Without credentials the service still estimates
	// coordinate, locode and airport routes; address and land routes fail
	// with a provider error.
	var providers []handler.ProviderProbe
	if cfg.Mapbox.AccessToken != "" {
		routingHTTP := resilience.NewClient(resilience.ClientConfig{
			Name:   mapbox.ProviderName,
			Logger: log,
		})
		serviceCfg.Router = mapbox.NewClient(mapbox.ClientConfig{
			AccessToken: cfg.Mapbox.AccessToken,
			BaseURL:     cfg.Mapbox.BaseURL,
			HTTPClient:  routingHTTP,
			Logger:      log,
		})

		geocodeHTTP := resilience.NewClient(resilience.ClientConfig{
			Name:   geocodemapbox.ProviderName,
			Logger: log,
		})
		resolverCfg.Geocoder = geocodemapbox.NewClient(geocodemapbox.ClientConfig{
			AccessToken: cfg.Mapbox.AccessToken,
			BaseURL:     cfg.Mapbox.BaseURL,
			HTTPClient:  geocodeHTTP,
			Logger:      log,
		})

		providers = []handler.ProviderProbe{
			{Name: mapbox.ProviderName, State: func() string { return routingHTTP.BreakerState().String() }},
			{Name: geocodemapbox.ProviderName, State: func() string { return geocodeHTTP.BreakerState().String() }},
		}
		log.Info().Msg("mapbox providers initialized")
	} else {
		log.Warn().Msg("no mapbox token configured, geocoding and road routing disabled")
	}

	serviceCfg.Resolver = location.NewResolver(resolverCfg)
	estimator := emissions.NewService(serviceCfg)
	log.Info().Msg("emissions service initialized")

	// Service tokens for the authenticated ops endpoints
	signingKey := cfg.Auth.SigningKey
	if signingKey == "" {
		signingKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default service token signing key - not secure for production")
	}
	tokens := auth.NewTokenService(auth.TokenConfig{
		SigningKey: signingKey,
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Tokens:      tokens,
		Estimator:   estimator,
		Tables:      tables,
		Providers:   providers,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// loadRefdata loads the reference tables from the configured source. The
// postgres path holds a pool only for the duration of the load; the tables
// are immutable once built.
func loadRefdata(ctx context.Context, cfg config.Config, log zerolog.Logger) (*refdata.Tables, error) {
	if cfg.RefdataSource == config.RefdataSourcePostgres {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Str("database", dbConfig.Database).
			Msg("database connected")

		return refdata.NewPostgresRepository(pool).Load(ctx)
	}

	return refdata.LoadCSV(refdata.CSVConfig{
		LocodePath:    cfg.Refdata.LocodePath,
		AirportPath:   cfg.Refdata.AirportPath,
		FactorPath:    cfg.Refdata.FactorPath,
		IntensityPath: cfg.Refdata.IntensityPath,
	})
}
