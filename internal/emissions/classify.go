package emissions

import (
	"fmt"
	"strings"

	"github.com/cargoscope/cargoscope/internal/refdata"
)

// LongHaulThresholdKM splits air transport into short and long haul for
// emission-factor lookup.
const LongHaulThresholdKM = 1600.0

const (
	longHaulSuffix  = "_long_haul"
	shortHaulSuffix = "_short_haul"
)

// classifyDistanceType determines which distance algorithm applies to a
// method. Any method containing "plane" is air transport; otherwise the
// emission-factor table's distance_calculation_method column decides. An
// unknown method yields an empty type, meaning no distance is computable --
// the caller reports distance 0.0, not an error.
func classifyDistanceType(factors *refdata.EmissionFactorTable, method *Method) (string, error) {
	key := method.Key()
	if key == "" {
		return "", fmt.Errorf("%w: method or vessel_type must be provided", ErrMissingInput)
	}

	if strings.Contains(key, "plane") {
		return DistanceTypeAir, nil
	}

	if dt, ok := factors.DistanceMethod(key); ok {
		return dt, nil
	}
	return "", nil
}

// haulAdjustedKey appends the haul-length suffix to plane methods before
// emission-factor lookup. Non-plane methods pass through unchanged.
func haulAdjustedKey(key string, distanceKM float64) string {
	if !strings.Contains(key, "plane") {
		return key
	}
	if distanceKM > LongHaulThresholdKM {
		return key + longHaulSuffix
	}
	return key + shortHaulSuffix
}
