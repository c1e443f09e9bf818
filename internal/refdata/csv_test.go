package refdata

import (
	"path/filepath"
	"testing"
)

func testCSVConfig() CSVConfig {
	return CSVConfig{
		LocodePath:    filepath.Join("testdata", "un_locodes.csv"),
		AirportPath:   filepath.Join("testdata", "airports.csv"),
		FactorPath:    filepath.Join("testdata", "emission_factors.csv"),
		IntensityPath: filepath.Join("testdata", "electricity_intensity.csv"),
	}
}

func TestLoadCSV(t *testing.T) {
	tables, err := LoadCSV(testCSVConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tables.Locodes.Len() != 3 {
		t.Errorf("expected 3 locodes, got %d", tables.Locodes.Len())
	}
	if tables.Airports.Len() != 3 {
		t.Errorf("expected 3 airports, got %d", tables.Airports.Len())
	}
	if tables.Factors.Len() != 6 {
		t.Errorf("expected 6 emission factors, got %d", tables.Factors.Len())
	}
	if tables.Intensity.Len() != 3 {
		t.Errorf("expected 3 intensity rows, got %d", tables.Intensity.Len())
	}

	// Spot-check parsed values.
	c, err := tables.Locodes.Coordinates("NLRTM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat <= 51 || c.Lat >= 52 {
		t.Errorf("unexpected Rotterdam latitude: %f", c.Lat)
	}

	a, err := tables.Airports.ByICAO("EHAM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.IATA != "AMS" {
		t.Errorf("expected AMS, got %s", a.IATA)
	}

	dm, ok := tables.Factors.DistanceMethod("container_ship")
	if !ok || dm != "sea" {
		t.Errorf("expected sea, got %q ok=%v", dm, ok)
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	cfg := testCSVConfig()
	cfg.FactorPath = filepath.Join("testdata", "does_not_exist.csv")

	if _, err := LoadCSV(cfg); err == nil {
		t.Error("expected error for missing file")
	}
}
