package location

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cargoscope/cargoscope/internal/geo"
	"github.com/cargoscope/cargoscope/internal/geocode"
	"github.com/cargoscope/cargoscope/internal/refdata"
)

// ResolverConfig holds configuration for the resolver.
type ResolverConfig struct {
	// Locodes is the UN/LOCODE reference table.
	Locodes *refdata.LocodeTable

	// Airports is the airport coordinate reference table.
	Airports *refdata.AirportTable

	// Geocoder resolves postal addresses. Optional; without it, address
	// descriptors resolve to the (0,0) unresolved marker.
	Geocoder geocode.Provider

	// Logger for resolver operations.
	Logger zerolog.Logger
}

// Resolver turns location descriptors into coordinates.
type Resolver struct {
	locodes  *refdata.LocodeTable
	airports *refdata.AirportTable
	geocoder geocode.Provider
	logger   zerolog.Logger
}

// NewResolver creates a new location resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{
		locodes:  cfg.Locodes,
		airports: cfg.Airports,
		geocoder: cfg.Geocoder,
		logger:   cfg.Logger,
	}
}

// Resolve picks the first populated descriptor variant, in the order locode,
// coordinates, address, airport code, and resolves it to coordinates. A
// location with no populated variant resolves to (0,0); callers must treat
// (0,0) as unresolved, not as a point in the Gulf of Guinea.
func (r *Resolver) Resolve(ctx context.Context, loc Location) (geo.Coordinate, error) {
	switch {
	case loc.Locode != nil && loc.Locode.Code != "":
		return r.resolveLocode(loc.Locode.Code)
	case loc.Coordinates.Populated():
		return geo.Coordinate{Lat: *loc.Coordinates.Lat, Lon: *loc.Coordinates.Lon}, nil
	case loc.Address != nil:
		return r.resolveAddress(ctx, loc.Address)
	case loc.AirportCode != "":
		return r.resolveAirportCode(loc.AirportCode)
	default:
		return geo.Coordinate{}, nil
	}
}

func (r *Resolver) resolveLocode(code string) (geo.Coordinate, error) {
	c, err := r.locodes.Coordinates(code)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("locode %q: %w", code, err)
	}
	return c, nil
}

// resolveAddress geocodes the address and takes the first feature, reversing
// the provider's (lon,lat) order. An empty result degrades to (0,0) rather
// than failing; a provider failure still fails.
func (r *Resolver) resolveAddress(ctx context.Context, addr *Address) (geo.Coordinate, error) {
	if r.geocoder == nil {
		r.logger.Warn().Msg("no geocoder configured, address resolves to unresolved marker")
		return geo.Coordinate{}, nil
	}

	query := addr.Query()
	features, err := r.geocoder.Forward(ctx, query)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("geocode %q: %w", query, err)
	}

	if len(features) == 0 {
		r.logger.Warn().
			Str("query", query).
			Msg("geocoder returned no features, degrading to unresolved marker")
		return geo.Coordinate{}, nil
	}

	first := features[0]
	return geo.Coordinate{Lat: first.Lat, Lon: first.Lon}, nil
}

// resolveAirportCode dispatches on code length: 3 characters searches the
// IATA column, 4 the ICAO column.
func (r *Resolver) resolveAirportCode(code string) (geo.Coordinate, error) {
	var (
		airport refdata.Airport
		err     error
	)

	switch len(code) {
	case 3:
		airport, err = r.airports.ByIATA(code)
	case 4:
		airport, err = r.airports.ByICAO(code)
	default:
		return geo.Coordinate{}, fmt.Errorf("airport code %q: %w", code, ErrInvalidAirportCode)
	}

	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("airport code %q: %w", code, err)
	}
	return geo.Coordinate{Lat: airport.Latitude, Lon: airport.Longitude}, nil
}
