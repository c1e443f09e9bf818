// Package mapbox provides a client for the Mapbox Geocoding API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoscope/cargoscope/internal/geocode"
	"github.com/cargoscope/cargoscope/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "mapbox-geocoding"

	// DefaultBaseURL is the Mapbox API base URL.
	DefaultBaseURL = "https://api.mapbox.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Mapbox geocoding client.
type ClientConfig struct {
	// AccessToken is the Mapbox access token (required).
	AccessToken string

	// BaseURL is the API base URL (optional, defaults to the Mapbox API).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client with
	// defaults is created.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Mapbox Geocoding API client.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  HTTPDoer
	logger      zerolog.Logger
}

// NewClient creates a new Mapbox geocoding client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:    ProviderName,
			Timeout: timeout,
			Logger:  cfg.Logger,
		})
	}

	return &Client{
		accessToken: cfg.AccessToken,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  httpClient,
		logger:      cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Mapbox response types.

type placesResponse struct {
	Features []placeFeature `json:"features"`
}

type placeFeature struct {
	PlaceName string        `json:"place_name"`
	Geometry  placeGeometry `json:"geometry"`
}

type placeGeometry struct {
	// Coordinates are GeoJSON order: [lon, lat].
	Coordinates []float64 `json:"coordinates"`
}

// Forward geocodes a free-text query via the Mapbox Places endpoint.
func (c *Client) Forward(ctx context.Context, query string) ([]geocode.Feature, error) {
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s",
		c.baseURL, url.PathEscape(query), url.QueryEscape(c.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug().
		Str("provider", ProviderName).
		Str("query", query).
		Msg("forward geocoding")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", geocode.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from geocoding endpoint", geocode.ErrProviderUnavailable, resp.StatusCode)
	}

	var places placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", geocode.ErrProviderUnavailable, err)
	}

	features := make([]geocode.Feature, 0, len(places.Features))
	for _, f := range places.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		features = append(features, geocode.Feature{
			PlaceName: f.PlaceName,
			Lon:       f.Geometry.Coordinates[0],
			Lat:       f.Geometry.Coordinates[1],
		})
	}

	c.logger.Debug().
		Str("provider", ProviderName).
		Int("feature_count", len(features)).
		Msg("geocoding response received")

	return features, nil
}
