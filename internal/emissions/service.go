package emissions

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cargoscope/cargoscope/internal/location"
	"github.com/cargoscope/cargoscope/internal/refdata"
	"github.com/cargoscope/cargoscope/internal/routing"
)

// ServiceConfig holds configuration for the emissions service.
type ServiceConfig struct {
	// Resolver turns location descriptors into coordinates.
	Resolver *location.Resolver

	// Router is the road-routing provider for land distances. Optional;
	// without it, land routes fail with a provider error.
	Router routing.Provider

	// Factors is the emission-factor reference table.
	Factors *refdata.EmissionFactorTable

	// Intensity is the grid electricity-intensity reference table.
	Intensity *refdata.ElectricityIntensityTable

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service orchestrates the emissions computation. It holds no per-request
// state; the reference tables are read-only, so a single Service is safe
// for concurrent use.
type Service struct {
	resolver  *location.Resolver
	router    routing.Provider
	factors   *refdata.EmissionFactorTable
	intensity *refdata.ElectricityIntensityTable
	logger    zerolog.Logger
}

// NewService creates a new emissions service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		resolver:  cfg.Resolver,
		router:    cfg.Router,
		factors:   cfg.Factors,
		intensity: cfg.Intensity,
		logger:    cfg.Logger,
	}
}

// Estimate computes emissions for a single shipment request. Sub-component
// failures are wrapped in a ComputationError naming the failed stage and
// preserving the cause.
func (s *Service) Estimate(ctx context.Context, req Request) (*Result, error) {
	if req.Shipment == nil {
		return nil, fmt.Errorf("%w: shipment", ErrMissingInput)
	}
	if req.Route == nil {
		return nil, fmt.Errorf("%w: route", ErrMissingInput)
	}
	if req.Method == nil {
		return nil, fmt.Errorf("%w: method", ErrMissingInput)
	}

	mass, err := ShipmentMass(req.Shipment)
	if err != nil {
		return nil, &ComputationError{Stage: "mass", Err: err}
	}

	distance, distanceMethod, err := s.distance(ctx, req.Route, req.Method)
	if err != nil {
		return nil, &ComputationError{Stage: "distance", Err: err}
	}

	factor, factorMethod, err := s.emissionFactor(req.Method, distance, req.CountryCode)
	if err != nil {
		return nil, &ComputationError{Stage: "emission_factor", Err: err}
	}

	result := &Result{
		Emissions:                       mass * distance * factor,
		ShipmentMass:                    mass,
		Distance:                        distance,
		DistanceCalculationMethod:       distanceMethod,
		EmissionFactor:                  factor,
		EmissionFactorCalculationMethod: factorMethod,
	}

	s.logger.Info().
		Float64("mass_tonnes", result.ShipmentMass).
		Float64("distance_km", result.Distance).
		Str("distance_method", result.DistanceCalculationMethod).
		Float64("emission_factor", result.EmissionFactor).
		Str("factor_method", result.EmissionFactorCalculationMethod).
		Float64("emissions_kg", result.Emissions).
		Msg("emissions computed")

	return result, nil
}
