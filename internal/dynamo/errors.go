package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrUnknownModelKind indicates a catalog lookup outside the registered set.
	ErrUnknownModelKind = errors.New("dynamo: unknown model kind")

	// ErrInvalidTimeDelta indicates a non-positive or non-finite frame delta.
	// Advance swallows it; ValidateDelta surfaces it for diagnostics.
	ErrInvalidTimeDelta = errors.New("dynamo: invalid time delta")

	// ErrInvalidTimeStep indicates a non-positive or non-finite fixed step.
	ErrInvalidTimeStep = errors.New("dynamo: invalid time step")

	// ErrUnknownParameter indicates a parameter name the model does not have.
	ErrUnknownParameter = errors.New("dynamo: unknown parameter")

	// ErrNonFiniteParameter indicates a NaN or Inf coefficient.
	ErrNonFiniteParameter = errors.New("dynamo: parameter must be finite")

	// ErrDiverged indicates the state left the finite range.
	ErrDiverged = errors.New("dynamo: state diverged (NaN or Inf detected)")
)

// StepError wraps an error with simulation context.
type StepError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
