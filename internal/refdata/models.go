// Package refdata holds the static reference datasets used to resolve
// locations and emission factors. Tables are loaded once at startup and are
// read-only afterwards, so they are safe for concurrent use.
package refdata

import (
	"errors"
	"strings"

	"github.com/cargoscope/cargoscope/internal/geo"
)

// ErrNotFound indicates a lookup produced no matching row.
var ErrNotFound = errors.New("no matching reference data row")

// GlobalAverageCode is the electricity-intensity row used when a country
// code is absent or unknown.
const GlobalAverageCode = "global_average"

// Locode is a UN/LOCODE row. Coordinates keeps the raw degree-minute string
// ("4042N 07400W") as shipped in the dataset.
type Locode struct {
	Code        string
	Coordinates string
}

// LocodeTable indexes UN/LOCODE rows by code.
type LocodeTable struct {
	byCode map[string]Locode
}

// NewLocodeTable builds a table from rows.
func NewLocodeTable(rows []Locode) *LocodeTable {
	byCode := make(map[string]Locode, len(rows))
	for _, r := range rows {
		byCode[r.Code] = r
	}
	return &LocodeTable{byCode: byCode}
}

// Coordinates returns the parsed coordinates for a locode.
func (t *LocodeTable) Coordinates(code string) (geo.Coordinate, error) {
	row, ok := t.byCode[code]
	if !ok {
		return geo.Coordinate{}, ErrNotFound
	}
	return geo.ParseDegreeMinutes(row.Coordinates)
}

// Len returns the number of rows.
func (t *LocodeTable) Len() int {
	return len(t.byCode)
}

// Airport is an airport coordinate row keyed by IATA and ICAO codes.
type Airport struct {
	IATA      string
	ICAO      string
	Latitude  float64
	Longitude float64
}

// AirportTable indexes airports by IATA and ICAO code.
type AirportTable struct {
	byIATA map[string]Airport
	byICAO map[string]Airport
}

// NewAirportTable builds a table from rows.
func NewAirportTable(rows []Airport) *AirportTable {
	byIATA := make(map[string]Airport, len(rows))
	byICAO := make(map[string]Airport, len(rows))
	for _, r := range rows {
		if r.IATA != "" {
			byIATA[r.IATA] = r
		}
		if r.ICAO != "" {
			byICAO[r.ICAO] = r
		}
	}
	return &AirportTable{byIATA: byIATA, byICAO: byICAO}
}

// ByIATA looks up an airport by its 3-letter IATA code.
func (t *AirportTable) ByIATA(code string) (Airport, error) {
	a, ok := t.byIATA[code]
	if !ok {
		return Airport{}, ErrNotFound
	}
	return a, nil
}

// ByICAO looks up an airport by its 4-letter ICAO code.
func (t *AirportTable) ByICAO(code string) (Airport, error) {
	a, ok := t.byICAO[code]
	if !ok {
		return Airport{}, ErrNotFound
	}
	return a, nil
}

// Len returns the number of rows.
func (t *AirportTable) Len() int {
	return len(t.byICAO)
}

// EmissionFactor is one emission-factor row. Fuel, Load and TradeLane are
// optional discriminators; empty means the row does not constrain them.
type EmissionFactor struct {
	Method         string
	Fuel           string
	Load           string
	TradeLane      string
	IsElectric     string
	Factor         float64
	DistanceMethod string
}

// FactorFilter narrows emission-factor rows. Method is required; the other
// fields only filter when non-empty.
type FactorFilter struct {
	Method    string
	Fuel      string
	Load      string
	TradeLane string
}

// EmissionFactorTable holds emission-factor rows in dataset order.
type EmissionFactorTable struct {
	rows []EmissionFactor
}

// NewEmissionFactorTable builds a table from rows.
func NewEmissionFactorTable(rows []EmissionFactor) *EmissionFactorTable {
	return &EmissionFactorTable{rows: rows}
}

// DistanceMethod returns the distance_calculation_method of the first row
// for the given method name.
func (t *EmissionFactorTable) DistanceMethod(method string) (string, bool) {
	for _, r := range t.rows {
		if r.Method == method {
			return r.DistanceMethod, true
		}
	}
	return "", false
}

// IsElectric reports whether the first row for the given method name is
// flagged electric ("yes", case-insensitive). The second return is false
// when no row exists for the method at all.
func (t *EmissionFactorTable) IsElectric(method string) (bool, bool) {
	for _, r := range t.rows {
		if r.Method == method {
			return strings.EqualFold(r.IsElectric, "yes"), true
		}
	}
	return false, false
}

// Match returns all rows matching the filter. Optional filter fields apply
// only when set, combined with logical AND.
func (t *EmissionFactorTable) Match(f FactorFilter) []EmissionFactor {
	var out []EmissionFactor
	for _, r := range t.rows {
		if r.Method != f.Method {
			continue
		}
		if f.Fuel != "" && r.Fuel != f.Fuel {
			continue
		}
		if f.Load != "" && r.Load != f.Load {
			continue
		}
		if f.TradeLane != "" && r.TradeLane != f.TradeLane {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Len returns the number of rows.
func (t *EmissionFactorTable) Len() int {
	return len(t.rows)
}

// ElectricityIntensity is one grid-intensity row.
type ElectricityIntensity struct {
	CountryCode string
	Value       float64
}

// ElectricityIntensityTable indexes grid intensity by country code. The
// dataset must contain a global_average row, which is the fallback for
// unknown or missing countries.
type ElectricityIntensityTable struct {
	byCountry map[string]float64
}

// NewElectricityIntensityTable builds a table from rows.
func NewElectricityIntensityTable(rows []ElectricityIntensity) *ElectricityIntensityTable {
	byCountry := make(map[string]float64, len(rows))
	for _, r := range rows {
		byCountry[r.CountryCode] = r.Value
	}
	return &ElectricityIntensityTable{byCountry: byCountry}
}

// Intensity returns the grid intensity for a country code, falling back to
// the global average when the country is absent or the code is empty.
// Returns ErrNotFound only when the global_average row itself is missing.
func (t *ElectricityIntensityTable) Intensity(countryCode string) (float64, error) {
	if countryCode != "" {
		if v, ok := t.byCountry[countryCode]; ok {
			return v, nil
		}
	}
	v, ok := t.byCountry[GlobalAverageCode]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

// HasCountry reports whether an explicit row exists for the country code.
func (t *ElectricityIntensityTable) HasCountry(countryCode string) bool {
	_, ok := t.byCountry[countryCode]
	return ok
}

// Len returns the number of rows.
func (t *ElectricityIntensityTable) Len() int {
	return len(t.byCountry)
}

// Tables bundles all reference datasets a calculator needs.
type Tables struct {
	Locodes   *LocodeTable
	Airports  *AirportTable
	Factors   *EmissionFactorTable
	Intensity *ElectricityIntensityTable
}
