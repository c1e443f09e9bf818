package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoscope/cargoscope/internal/refdata"
)

func TestConvertDistanceToKM(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		unit     string
		want     float64
	}{
		{name: "kilometers unchanged", distance: 100, unit: DistanceUnitKilometer, want: 100},
		{name: "miles", distance: 100, unit: DistanceUnitMile, want: 160.934},
		{name: "nautical miles", distance: 100, unit: DistanceUnitNauticalMile, want: 185.2},
		{name: "empty unit treated as kilometers", distance: 42, unit: "", want: 42},
		{name: "unknown unit passes through", distance: 42, unit: "furlongs", want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ConvertDistanceToKM(tt.distance, tt.unit), 1e-9)
		})
	}
}

func TestClassifyDistanceType(t *testing.T) {
	factors := refdata.NewEmissionFactorTable([]refdata.EmissionFactor{
		{Method: "truck", DistanceMethod: DistanceTypeLand, Factor: 0.1},
		{Method: "container_ship", DistanceMethod: DistanceTypeSea, Factor: 0.01},
	})

	tests := []struct {
		name   string
		method Method
		want   string
	}{
		{name: "plane methods are always air", method: Method{Method: "cargo_plane"}, want: DistanceTypeAir},
		{name: "plane substring suffices", method: Method{Method: "seaplane"}, want: DistanceTypeAir},
		{name: "table lookup land", method: Method{Method: "truck"}, want: DistanceTypeLand},
		{name: "vessel type falls back to table", method: Method{VesselType: "container_ship"}, want: DistanceTypeSea},
		{name: "unknown method yields empty type", method: Method{Method: "hovercraft"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifyDistanceType(factors, &tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDistanceType_EmptyMethod(t *testing.T) {
	factors := refdata.NewEmissionFactorTable(nil)

	_, err := classifyDistanceType(factors, &Method{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestHaulAdjustedKey(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		distanceKM float64
		want       string
	}{
		{name: "long haul above threshold", key: "cargo_plane", distanceKM: 1601, want: "cargo_plane_long_haul"},
		{name: "short haul below threshold", key: "cargo_plane", distanceKM: 400, want: "cargo_plane_short_haul"},
		{name: "threshold itself is short haul", key: "cargo_plane", distanceKM: 1600, want: "cargo_plane_short_haul"},
		{name: "non-plane methods unchanged", key: "truck", distanceKM: 5000, want: "truck"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, haulAdjustedKey(tt.key, tt.distanceKM))
		})
	}
}
