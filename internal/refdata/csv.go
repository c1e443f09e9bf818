package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVConfig holds the file paths for the CSV-backed reference datasets.
type CSVConfig struct {
	LocodePath    string
	AirportPath   string
	FactorPath    string
	IntensityPath string
}

// LoadCSV loads all four reference tables from CSV files.
func LoadCSV(cfg CSVConfig) (*Tables, error) {
	locodes, err := LoadLocodesCSV(cfg.LocodePath)
	if err != nil {
		return nil, fmt.Errorf("load locodes: %w", err)
	}
	airports, err := LoadAirportsCSV(cfg.AirportPath)
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}
	factors, err := LoadEmissionFactorsCSV(cfg.FactorPath)
	if err != nil {
		return nil, fmt.Errorf("load emission factors: %w", err)
	}
	intensity, err := LoadElectricityIntensityCSV(cfg.IntensityPath)
	if err != nil {
		return nil, fmt.Errorf("load electricity intensity: %w", err)
	}

	return &Tables{
		Locodes:   locodes,
		Airports:  airports,
		Factors:   factors,
		Intensity: intensity,
	}, nil
}

// LoadLocodesCSV reads the UN/LOCODE dataset. Expected columns: locode,
// coordinates.
func LoadLocodesCSV(path string) (*LocodeTable, error) {
	var rows []Locode
	err := readCSV(path, func(get func(string) string) error {
		rows = append(rows, Locode{
			Code:        get("locode"),
			Coordinates: get("coordinates"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewLocodeTable(rows), nil
}

// LoadAirportsCSV reads the airport dataset. Expected columns: iata, icao,
// latitude, longitude.
func LoadAirportsCSV(path string) (*AirportTable, error) {
	var rows []Airport
	err := readCSV(path, func(get func(string) string) error {
		lat, err := strconv.ParseFloat(get("latitude"), 64)
		if err != nil {
			return fmt.Errorf("latitude: %w", err)
		}
		lon, err := strconv.ParseFloat(get("longitude"), 64)
		if err != nil {
			return fmt.Errorf("longitude: %w", err)
		}
		rows = append(rows, Airport{
			IATA:      get("iata"),
			ICAO:      get("icao"),
			Latitude:  lat,
			Longitude: lon,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewAirportTable(rows), nil
}

// LoadEmissionFactorsCSV reads the emission-factor dataset. Expected columns:
// method, fuel, load, trade_lane, is_electric, emission_factor,
// distance_calculation_method.
func LoadEmissionFactorsCSV(path string) (*EmissionFactorTable, error) {
	var rows []EmissionFactor
	err := readCSV(path, func(get func(string) string) error {
		factor, err := strconv.ParseFloat(get("emission_factor"), 64)
		if err != nil {
			return fmt.Errorf("emission_factor: %w", err)
		}
		rows = append(rows, EmissionFactor{
			Method:         get("method"),
			Fuel:           get("fuel"),
			Load:           get("load"),
			TradeLane:      get("trade_lane"),
			IsElectric:     get("is_electric"),
			Factor:         factor,
			DistanceMethod: get("distance_calculation_method"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewEmissionFactorTable(rows), nil
}

// LoadElectricityIntensityCSV reads the grid-intensity dataset. Expected
// columns: country_code, value.
func LoadElectricityIntensityCSV(path string) (*ElectricityIntensityTable, error) {
	var rows []ElectricityIntensity
	err := readCSV(path, func(get func(string) string) error {
		value, err := strconv.ParseFloat(get("value"), 64)
		if err != nil {
			return fmt.Errorf("value: %w", err)
		}
		rows = append(rows, ElectricityIntensity{
			CountryCode: get("country_code"),
			Value:       value,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewElectricityIntensityTable(rows), nil
}

// readCSV streams a CSV file, passing each record to fn with a by-header
// accessor. Missing columns read as empty strings.
func readCSV(path string, fn func(get func(string) string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if err := fn(get); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}
