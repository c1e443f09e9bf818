// Package routing provides road-network route computation between two
// coordinates, used for land-based transport distances.
package routing

import (
	"context"
	"errors"

	"github.com/cargoscope/cargoscope/internal/geo"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the routing provider is down or the
	// circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates the provider returned no route between the
	// given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrInvalidCoordinates indicates the provided coordinates are out of
	// range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider defines the interface for road-routing providers.
type Provider interface {
	// Directions computes driving routes between two points.
	Directions(ctx context.Context, origin, destination geo.Coordinate) (*DirectionsResponse, error)
	// Name returns the provider identifier for logging.
	Name() string
}

// DirectionsResponse holds the routes returned by a provider.
type DirectionsResponse struct {
	Routes   []Route
	Provider string
}

// Route is a single road route option.
type Route struct {
	// DistanceMeters is the total route distance in meters.
	DistanceMeters float64
	// DurationSeconds is the total driving duration in seconds.
	DurationSeconds float64
}

// Error carries detailed error information from a routing provider.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
