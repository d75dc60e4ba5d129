package epid

import (
	"errors"
	"fmt"
	"math"
)

// Initialization outcomes. A nil error is success.
var (
	// ErrInit indicates a bad parameter: negative gain, non-positive time
	// constant, out of range smoothing factor or a nil context.
	ErrInit = errors.New("epid: initialization error")

	// ErrFloat indicates a NaN or infinite input while finite checks are on.
	ErrFloat = errors.New("epid: floating-point error")
)

// ParamError names the input that failed validation.
type ParamError struct {
	Param string
	Value float64
	Err   error
}

func (e *ParamError) Error() string {
	if e.Param == "ctx" {
		return fmt.Sprintf("%v: nil context", e.Err)
	}
	return fmt.Sprintf("%v: %s = %g", e.Err, e.Param, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkFinite returns an ErrFloat ParamError for the first non-finite value.
func checkFinite(names []string, values ...float64) error {
	for i, v := range values {
		if !isFinite(v) {
			return &ParamError{Param: names[i], Value: v, Err: ErrFloat}
		}
	}
	return nil
}
