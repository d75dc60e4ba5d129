package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates the plant state went NaN or infinite.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates a disturbance or state that does not fit the plant.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and plant")

	// ErrBadConfig indicates a non-positive step or duration.
	ErrBadConfig = errors.New("sim: invalid configuration")
)

// SimulationError wraps an error with the sample it happened on.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
