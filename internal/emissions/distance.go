package emissions

import (
	"context"
	"fmt"

	"github.com/cargoscope/cargoscope/internal/geo"
	"github.com/cargoscope/cargoscope/internal/routing"
)

// Unit-to-kilometer conversion factors.
const (
	milesToKM         = 1.60934
	nauticalMilesToKM = 1.852
)

// seaDistanceMultiplier scales the great-circle distance to approximate a
// sea route. Deliberate placeholder pending a real sea-routing model.
const seaDistanceMultiplier = 2.0

// ConvertDistanceToKM converts a distance to kilometers. Unrecognized units
// pass through unchanged and are treated as kilometers.
func ConvertDistanceToKM(distance float64, unit string) float64 {
	switch unit {
	case DistanceUnitMile:
		return distance * milesToKM
	case DistanceUnitNauticalMile:
		return distance * nauticalMilesToKM
	default:
		return distance
	}
}

// distance resolves the route to a distance in kilometers plus the name of
// the algorithm used. A user-supplied distance short-circuits everything and
// reports an empty algorithm name.
func (s *Service) distance(ctx context.Context, route *Route, method *Method) (float64, string, error) {
	if route.Distance != nil {
		return ConvertDistanceToKM(*route.Distance, route.Unit), "", nil
	}

	if route.Source == nil || route.Destination == nil {
		return 0, "", fmt.Errorf("%w: route requires either a distance or both source and destination", ErrMissingInput)
	}

	source, err := s.resolver.Resolve(ctx, *route.Source)
	if err != nil {
		return 0, "", fmt.Errorf("resolve source: %w", err)
	}
	destination, err := s.resolver.Resolve(ctx, *route.Destination)
	if err != nil {
		return 0, "", fmt.Errorf("resolve destination: %w", err)
	}

	distanceType, err := classifyDistanceType(s.factors, method)
	if err != nil {
		return 0, "", err
	}

	switch distanceType {
	case DistanceTypeLand:
		km, err := s.roadDistanceKM(ctx, source, destination)
		if err != nil {
			return 0, "", err
		}
		return km, DistanceMethodRoad, nil

	case DistanceTypeAir:
		return geo.GreatCircleKM(source, destination), DistanceMethodGreatCircle, nil

	case DistanceTypeSea:
		return geo.GreatCircleKM(source, destination) * seaDistanceMultiplier, DistanceMethodGreatCircle2, nil

	default:
		// Unresolved distance type: no distance computable.
		s.logger.Warn().
			Str("method", method.Key()).
			Msg("no distance calculation method for transport method")
		return 0, "", nil
	}
}

// roadDistanceKM fetches the driving distance from the routing provider and
// takes the first route.
func (s *Service) roadDistanceKM(ctx context.Context, source, destination geo.Coordinate) (float64, error) {
	if s.router == nil {
		return 0, fmt.Errorf("%w: no routing provider configured", routing.ErrProviderUnavailable)
	}

	resp, err := s.router.Directions(ctx, source, destination)
	if err != nil {
		return 0, fmt.Errorf("road routing: %w", err)
	}
	if len(resp.Routes) == 0 {
		return 0, fmt.Errorf("road routing: %w", routing.ErrNoRouteFound)
	}

	return resp.Routes[0].DistanceMeters / 1000, nil
}
