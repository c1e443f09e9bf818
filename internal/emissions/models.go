// Package emissions computes greenhouse-gas emissions for a single freight
// shipment: emissions = mass × distance × emission factor.
package emissions

import (
	"github.com/cargoscope/cargoscope/internal/location"
)

// Distance calculation method names reported in results.
const (
	// DistanceMethodRoad is road-network routing via the Mapbox provider.
	DistanceMethodRoad = "mapbox"
	// DistanceMethodGreatCircle is the haversine great-circle distance.
	DistanceMethodGreatCircle = "great_circle_distance"
	// DistanceMethodGreatCircle2 is the sea approximation: great-circle
	// doubled. A placeholder pending a real sea-routing model.
	DistanceMethodGreatCircle2 = "great_circle_distance_2"
)

// Distance types from the emission-factor table.
const (
	DistanceTypeLand = "land"
	DistanceTypeAir  = "air"
	DistanceTypeSea  = "sea"
)

// Mass units accepted in shipment input.
const (
	MassUnitGram     = "g"
	MassUnitKilogram = "kg"
	MassUnitTonne    = "t"
)

// Distance units accepted for user-supplied distances.
const (
	DistanceUnitKilometer    = "km"
	DistanceUnitMile         = "mi"
	DistanceUnitNauticalMile = "nm"
)

// Cargo types for container shipments.
const (
	CargoTypeLightweight   = "lightweight"
	CargoTypeAverage       = "average"
	CargoTypeHeavyweight   = "heavyweight"
	CargoTypeContainerOnly = "container_only"
)

// Mass is a shipment mass with its unit.
type Mass struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Shipment describes the cargo: either an explicit mass or a container
// count with an optional cargo type.
type Shipment struct {
	Mass       *Mass  `json:"mass,omitempty"`
	Containers int    `json:"containers,omitempty"`
	CargoType  string `json:"cargo_type,omitempty"`
}

// Route describes how the shipment travels: a direct distance with unit, or
// a source/destination pair of location descriptors. A direct distance takes
// priority when present.
type Route struct {
	Distance    *float64           `json:"distance,omitempty"`
	Unit        string             `json:"unit,omitempty"`
	Source      *location.Location `json:"source,omitempty"`
	Destination *location.Location `json:"destination,omitempty"`
}

// Method describes the transport method. Method (or VesselType for sea
// transport) selects the emission-factor rows; Fuel, Load and TradeLane
// narrow the selection when supplied.
type Method struct {
	Method     string `json:"method,omitempty"`
	Fuel       string `json:"fuel,omitempty"`
	Load       string `json:"load,omitempty"`
	TradeLane  string `json:"trade_lane,omitempty"`
	VesselType string `json:"vessel_type,omitempty"`
}

// Key returns the emission-factor lookup key: the method name, falling back
// to the vessel type.
func (m *Method) Key() string {
	if m.Method != "" {
		return m.Method
	}
	return m.VesselType
}

// Request is a single emissions-estimation request.
type Request struct {
	Shipment    *Shipment `json:"shipment,omitempty"`
	Route       *Route    `json:"route,omitempty"`
	Method      *Method   `json:"method,omitempty"`
	CountryCode string    `json:"country_code,omitempty"`
}

// Result is the computed emissions record. Emissions are in kilograms of
// CO2-equivalent; mass is in tonnes; distance in kilometers.
type Result struct {
	Emissions                       float64 `json:"emissions"`
	ShipmentMass                    float64 `json:"shipment_mass"`
	Distance                        float64 `json:"distance"`
	DistanceCalculationMethod       string  `json:"distance_calculation_method"`
	EmissionFactor                  float64 `json:"emission_factor"`
	EmissionFactorCalculationMethod string  `json:"emission_factor_calculation_method"`
}
