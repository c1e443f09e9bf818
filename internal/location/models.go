// Package location resolves heterogeneous location descriptors into
// coordinates.
package location

import (
	"errors"
	"strings"
)

// ErrInvalidAirportCode indicates an airport code that is neither a 3-letter
// IATA code nor a 4-letter ICAO code.
var ErrInvalidAirportCode = errors.New("airport code must be 3 (IATA) or 4 (ICAO) characters")

// Location is a tagged union of location descriptors. Exactly one variant is
// expected to be populated; resolution picks the first populated variant in
// the order locode, coordinates, address, airport code. A location with no
// populated variant resolves to (0,0), the unresolved marker.
type Location struct {
	Locode      *Locode      `json:"locode,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Address     *Address     `json:"address,omitempty"`
	AirportCode string       `json:"airport_code,omitempty"`
}

// Locode is a UN/LOCODE reference.
type Locode struct {
	Code string `json:"locode"`
}

// Coordinates is an explicit coordinate pair. Pointers distinguish "absent"
// from a legitimate zero value; both must be set for the variant to count as
// populated.
type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Populated reports whether both latitude and longitude are present.
func (c *Coordinates) Populated() bool {
	return c != nil && c.Lat != nil && c.Lon != nil
}

// Address is a postal address for forward geocoding.
type Address struct {
	StreetLine1 string `json:"street_line1,omitempty"`
	City        string `json:"city,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// Query joins the non-empty address fields into a geocoding query string.
func (a *Address) Query() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.StreetLine1, a.City, a.Postcode, a.CountryCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
