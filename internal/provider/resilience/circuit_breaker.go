// Package resilience provides a resilient HTTP client for the external
// Mapbox collaborators: retries with exponential backoff behind a circuit
// breaker, so a flapping provider fails fast instead of piling up requests.
package resilience

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig holds configuration for the circuit breaker guarding a
// provider.
type BreakerConfig struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxRequests is the number of probe requests allowed in half-open state.
	// Default: 1.
	MaxRequests uint32

	// OpenTimeout is how long the breaker stays open before probing again.
	// Default: 30 seconds.
	OpenTimeout time.Duration

	// ReadyToTrip decides when to open the breaker. Defaults to tripping at a
	// 50% failure rate once at least 5 requests have been observed.
	ReadyToTrip func(counts gobreaker.Counts) bool
}

func defaultReadyToTrip(counts gobreaker.Counts) bool {
	ratio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && ratio >= 0.5
}

func newBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker[*respCapture] {
	maxRequests := cfg.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout == 0 {
		openTimeout = 30 * time.Second
	}
	readyToTrip := cfg.ReadyToTrip
	if readyToTrip == nil {
		readyToTrip = defaultReadyToTrip
	}

	return gobreaker.NewCircuitBreaker[*respCapture](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: maxRequests,
		Timeout:     openTimeout,
		ReadyToTrip: readyToTrip,
	})
}
