// Package geo provides coordinate types and geodesic calculations.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinateString indicates a degree-minute coordinate string
// could not be parsed.
var ErrInvalidCoordinateString = errors.New("invalid coordinate string")

// EarthRadiusKM is the mean Earth radius used for great-circle distances.
const EarthRadiusKM = 6371.0

// Coordinate represents a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks that the coordinate is within valid ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}

// IsZero reports whether the coordinate is the (0,0) origin. The resolver
// uses (0,0) as its unresolved marker, so callers must not treat it as a
// real location.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// GreatCircleKM returns the haversine great-circle distance between two
// points in kilometers.
func GreatCircleKM(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKM * c
}

// ParseDegreeMinutes parses a UN/LOCODE coordinate string such as
// "4042N 07400W" into decimal degrees. Each token is degrees concatenated
// with two-digit minutes and a trailing hemisphere letter; S and W are
// negative.
func ParseDegreeMinutes(s string) (Coordinate, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: want %q format, got %q", ErrInvalidCoordinateString, "4042N 07400W", s)
	}

	lat, err := parseDegreeMinuteToken(parts[0], "NS")
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: latitude %q: %v", ErrInvalidCoordinateString, parts[0], err)
	}
	lon, err := parseDegreeMinuteToken(parts[1], "EW")
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: longitude %q: %v", ErrInvalidCoordinateString, parts[1], err)
	}

	return Coordinate{Lat: lat, Lon: lon}, nil
}

// parseDegreeMinuteToken converts a token like "4042N" to decimal degrees.
// The last character is the hemisphere, the two digits before it are minutes,
// everything before that is whole degrees.
func parseDegreeMinuteToken(token, hemispheres string) (float64, error) {
	if len(token) < 4 {
		return 0, errors.New("token too short")
	}

	hemi := token[len(token)-1:]
	if !strings.Contains(hemispheres, hemi) {
		return 0, fmt.Errorf("hemisphere %q not one of %q", hemi, hemispheres)
	}

	degrees, err := strconv.Atoi(token[:len(token)-3])
	if err != nil {
		return 0, fmt.Errorf("degrees: %w", err)
	}
	minutes, err := strconv.Atoi(token[len(token)-3 : len(token)-1])
	if err != nil {
		return 0, fmt.Errorf("minutes: %w", err)
	}

	decimal := float64(degrees) + float64(minutes)/60
	if hemi == "S" || hemi == "W" {
		decimal = -decimal
	}

	return decimal, nil
}
