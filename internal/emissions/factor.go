package emissions

import (
	"fmt"

	"github.com/cargoscope/cargoscope/internal/refdata"
)

// emissionFactor resolves the emission factor for a method at a given
// distance, returning the factor and the (possibly haul-suffixed) method
// name used for the lookup.
func (s *Service) emissionFactor(method *Method, distanceKM float64, countryCode string) (float64, string, error) {
	key := method.Key()
	if key == "" {
		return 0, "", fmt.Errorf("%w: method or vessel_type must be provided", ErrMissingInput)
	}

	name := haulAdjustedKey(key, distanceKM)

	// The electricity flag comes from the method's first table row, before
	// any fuel/load/trade-lane filtering.
	electric, found := s.factors.IsElectric(name)
	if !found {
		return 0, "", fmt.Errorf("emission factor for method %q: %w", name, refdata.ErrNotFound)
	}

	rows := s.factors.Match(refdata.FactorFilter{
		Method:    name,
		Fuel:      method.Fuel,
		Load:      method.Load,
		TradeLane: method.TradeLane,
	})
	if len(rows) == 0 {
		return 0, "", fmt.Errorf("emission factor for method %q, fuel %q, load %q, trade_lane %q: %w",
			name, method.Fuel, method.Load, method.TradeLane, refdata.ErrNotFound)
	}

	// Ambiguous matches resolve by averaging, not first-match. Kept from the
	// reference dataset's documented policy.
	factor := 0.0
	for _, r := range rows {
		factor += r.Factor
	}
	factor /= float64(len(rows))

	if electric {
		intensity, err := s.intensity.Intensity(countryCode)
		if err != nil {
			return 0, "", fmt.Errorf("electricity intensity: %w", err)
		}
		if countryCode == "" || !s.intensity.HasCountry(countryCode) {
			s.logger.Debug().
				Str("country_code", countryCode).
				Msg("electricity intensity degraded to global average")
		}
		factor *= intensity
	}

	return factor, name, nil
}
