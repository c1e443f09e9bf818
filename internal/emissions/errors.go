package emissions

import (
	"errors"
	"fmt"
)

// Sentinel errors for emissions computation.
var (
	// ErrMissingInput indicates a required input field is absent.
	ErrMissingInput = errors.New("required input missing")
	// ErrInvalidInput indicates a malformed or unsupported input value.
	ErrInvalidInput = errors.New("invalid input")
)

// ComputationError wraps a sub-component failure raised from the
// orchestrator, preserving the original cause for diagnostics.
type ComputationError struct {
	// Stage names the computation step that failed: mass, distance or
	// emission_factor.
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computing %s: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
