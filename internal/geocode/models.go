// Package geocode defines the forward-geocoding provider interface used to
// resolve postal addresses into coordinates.
package geocode

import (
	"context"
	"errors"
)

// ErrProviderUnavailable indicates the geocoding provider could not be
// reached or returned an unusable response. An empty feature list is NOT an
// error: the resolver degrades it to the (0,0) unresolved marker.
var ErrProviderUnavailable = errors.New("geocoding provider unavailable")

// Feature is one geocoding result. Lon and Lat are kept in the provider's
// (lon, lat) order; callers reverse them into a geo.Coordinate.
type Feature struct {
	PlaceName string
	Lon       float64
	Lat       float64
}

// Provider is a forward-geocoding provider.
type Provider interface {
	// Forward geocodes a free-text query. A query that matches nothing
	// returns an empty slice and no error.
	Forward(ctx context.Context, query string) ([]Feature, error)

	// Name returns the provider identifier for logging.
	Name() string
}
