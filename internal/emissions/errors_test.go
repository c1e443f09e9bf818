package emissions

import (
	"errors"
	"testing"
)

func TestComputationError(t *testing.T) {
	cause := errors.New("boom")
	err := &ComputationError{Stage: "distance", Err: cause}

	if got, want := err.Error(), "computing distance: boom"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}
