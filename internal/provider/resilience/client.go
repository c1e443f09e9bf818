package resilience

import (
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Sentinel errors for resilient HTTP calls.
var (
	// ErrCircuitOpen is returned while the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies the provider for breaker naming and logs.
	Name string

	// Timeout is the per-request timeout. Default: 10s.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the first try.
	// Default: 3.
	MaxRetries uint64

	// InitialInterval is the first backoff interval. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the backoff interval. Default: 5s.
	MaxInterval time.Duration

	// Breaker overrides the circuit breaker configuration.
	Breaker *BreakerConfig

	// Logger for retry and breaker events.
	Logger zerolog.Logger
}

// respCapture carries the response through the breaker's generic Execute.
type respCapture struct {
	resp *http.Response
}

// Client wraps http.Client with retries and a circuit breaker. 5xx responses
// and transport errors count as failures; 4xx responses pass through.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*respCapture]
	cfg        ClientConfig
	logger     zerolog.Logger
}

// NewClient creates a resilient HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	breakerCfg := BreakerConfig{Name: cfg.Name}
	if cfg.Breaker != nil {
		breakerCfg = *cfg.Breaker
		if breakerCfg.Name == "" {
			breakerCfg.Name = cfg.Name
		}
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    newBreaker(breakerCfg),
		cfg:        cfg,
		logger:     cfg.Logger,
	}
}

// ServerError marks an HTTP 5xx response so the breaker and retry loop treat
// it as a failure.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

// Do executes the request, retrying transient failures with exponential
// backoff. Returns ErrCircuitOpen immediately while the breaker is open.
// The caller owns the response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.InitialInterval
	bo.MaxInterval = c.cfg.MaxInterval
	bo.MaxElapsedTime = 0 // retries bounded by MaxRetries, not wall time

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.cfg.MaxRetries), ctx)

	var last *http.Response
	attempt := 0

	operation := func() error {
		attempt++

		capture, err := c.breaker.Execute(func() (*respCapture, error) {
			resp, err := c.httpClient.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			if resp.StatusCode >= 500 {
				return &respCapture{resp: resp}, &ServerError{StatusCode: resp.StatusCode}
			}
			return &respCapture{resp: resp}, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if capture != nil {
				closeBody(last)
				last = capture.resp
			}
			c.logger.Debug().
				Err(err).
				Str("provider", c.cfg.Name).
				Int("attempt", attempt).
				Msg("provider request failed, will retry")
			return err
		}

		closeBody(last)
		last = capture.resp
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		// A 5xx that exhausted retries still hands the response back so the
		// caller can read the provider's error payload.
		if last != nil {
			return last, nil
		}
		return nil, err
	}

	return last, nil
}

// BreakerState returns the current circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// closeBody closes a superseded response body so a retried 5xx does not
// leak its connection.
func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
