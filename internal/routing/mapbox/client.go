// Package mapbox provides a client for the Mapbox Directions API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoscope/cargoscope/internal/geo"
	"github.com/cargoscope/cargoscope/internal/provider/resilience"
	"github.com/cargoscope/cargoscope/internal/routing"
)

const (
	// ProviderName identifies this routing provider. It is also the
	// distance_calculation_method value reported for land routes.
	ProviderName = "mapbox"

	// DefaultBaseURL is the Mapbox API base URL.
	DefaultBaseURL = "https://api.mapbox.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Mapbox directions client.
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

// Client is a Mapbox Directions API client using the driving profile.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  HTTPDoer
	logger      zerolog.Logger
}

// NewClient creates a new Mapbox directions client.
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

type directionsResponse struct {
	Routes  []directionsRoute `json:"routes"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
}

type directionsRoute struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// Directions computes driving routes between two points. The Mapbox
// coordinate path is (lon,lat) pairs separated by semicolons.
func (c *Client) Directions(ctx context.Context, origin, destination geo.Coordinate) (*routing.DirectionsResponse, error) {
	if err := origin.Validate(); err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "INVALID_ORIGIN",
			Message:  "invalid origin coordinates",
			Err:      routing.ErrInvalidCoordinates,
		}
	}
	if err := destination.Validate(); err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "INVALID_DESTINATION",
			Message:  "invalid destination coordinates",
			Err:      routing.ErrInvalidCoordinates,
		}
	}

	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/driving/%f,%f;%f,%f?access_token=%s&overview=false",
		c.baseURL,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
		url.QueryEscape(c.accessToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug().
		Str("provider", ProviderName).
		Float64("origin_lat", origin.Lat).
		Float64("origin_lon", origin.Lon).
		Float64("dest_lat", destination.Lat).
		Float64("dest_lon", destination.Lon).
		Msg("requesting driving directions")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach routing provider",
			Err:      routing.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp.StatusCode, body)
	}

	var directions directionsResponse
	if err := json.Unmarshal(body, &directions); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Mapbox reports NoRoute/NoSegment with a 200 status and a non-Ok code.
	if directions.Code != "" && directions.Code != "Ok" {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     directions.Code,
			Message:  directions.Message,
			Err:      routing.ErrNoRouteFound,
		}
	}

	if len(directions.Routes) == 0 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "provider returned no routes",
			Err:      routing.ErrNoRouteFound,
		}
	}

	routes := make([]routing.Route, 0, len(directions.Routes))
	for _, r := range directions.Routes {
		routes = append(routes, routing.Route{
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
		})
	}

	c.logger.Debug().
		Str("provider", ProviderName).
		Int("route_count", len(routes)).
		Msg("directions received")

	return &routing.DirectionsResponse{
		Routes:   routes,
		Provider: ProviderName,
	}, nil
}

// handleErrorResponse maps Mapbox error payloads to domain errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var payload directionsResponse
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = fmt.Sprintf("routing provider returned status %d", statusCode)
	}

	switch {
	case statusCode == http.StatusUnprocessableEntity:
		return &routing.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  message,
			Err:      routing.ErrNoRouteFound,
		}
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &routing.Error{
			Provider: ProviderName,
			Code:     "ACCESS_DENIED",
			Message:  "API access denied - check access token configuration",
			Err:      routing.ErrProviderUnavailable,
		}
	case statusCode >= 500:
		return &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("SERVER_%d", statusCode),
			Message:  "routing provider is temporarily unavailable",
			Err:      routing.ErrProviderUnavailable,
		}
	default:
		return &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", statusCode),
			Message:  message,
			Err:      routing.ErrProviderUnavailable,
		}
	}
}
