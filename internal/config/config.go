// Package config loads service configuration from environment variables with
// an optional YAML overlay for the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Reference-data source kinds.
const (
	RefdataSourceCSV      = "csv"
	RefdataSourcePostgres = "postgres"
)

// Config holds the full service configuration.
type Config struct {
	Env  string `yaml:"env"`
	Port string `yaml:"port"`

	// RefdataSource selects where reference tables load from: "csv" or
	// "postgres".
	RefdataSource string        `yaml:"refdata_source"`
	Refdata       RefdataConfig `yaml:"refdata"`

	Mapbox    MapboxConfig    `yaml:"mapbox"`
	Auth      AuthConfig      `yaml:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RefdataConfig holds CSV reference-data file paths.
type RefdataConfig struct {
	LocodePath    string `yaml:"locode_path"`
	AirportPath   string `yaml:"airport_path"`
	FactorPath    string `yaml:"factor_path"`
	IntensityPath string `yaml:"intensity_path"`
}

// MapboxConfig holds Mapbox provider configuration. An empty access token
// disables the geocoding and road-routing providers.
type MapboxConfig struct {
	BaseURL     string `yaml:"base_url"`
	AccessToken string `yaml:"access_token"`
}

// AuthConfig holds service-token configuration for the ops endpoints.
type AuthConfig struct {
	SigningKey string `yaml:"signing_key"`
	Issuer     string `yaml:"issuer"`
	Audience   string `yaml:"audience"`
}

// TelemetryConfig holds OpenTelemetry configuration.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SampleRatio  float64 `yaml:"sample_ratio"`
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	return Config{
		Env:           getEnvOrDefault("APP_ENV", "development"),
		Port:          getEnvOrDefault("APP_PORT", "8080"),
		RefdataSource: getEnvOrDefault("REFDATA_SOURCE", RefdataSourceCSV),
		Refdata: RefdataConfig{
			LocodePath:    getEnvOrDefault("REFDATA_LOCODE_PATH", "data/un_locodes.csv"),
			AirportPath:   getEnvOrDefault("REFDATA_AIRPORT_PATH", "data/airports.csv"),
			FactorPath:    getEnvOrDefault("REFDATA_FACTOR_PATH", "data/emission_factors.csv"),
			IntensityPath: getEnvOrDefault("REFDATA_INTENSITY_PATH", "data/electricity_intensity.csv"),
		},
		Mapbox: MapboxConfig{
			BaseURL:     getEnvOrDefault("MAPBOX_BASE_URL", "https://api.mapbox.com"),
			AccessToken: os.Getenv("MAPBOX_ACCESS_TOKEN"),
		},
		Auth: AuthConfig{
			SigningKey: os.Getenv("SERVICE_TOKEN_SIGNING_KEY"),
			Issuer:     getEnvOrDefault("SERVICE_TOKEN_ISSUER", "https://api.cargoscope.io"),
			Audience:   getEnvOrDefault("SERVICE_TOKEN_AUDIENCE", "cargoscope-api"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      os.Getenv("OTEL_ENABLED") == "true",
			OTLPEndpoint: getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRatio:  getEnvFloat("OTEL_SAMPLE_RATIO"),
		},
	}
}

// Load builds a Config from the environment and, when path is non-empty,
// overlays it with values from a YAML file. YAML values win over environment
// values for fields the file sets.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// getEnvFloat parses a float env var. Unset or malformed values become zero,
// which downstream treats as "use the default".
func getEnvFloat(key string) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
