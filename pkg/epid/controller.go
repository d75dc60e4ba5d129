package epid

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the PI or PID variant of the term and sum steps.
type Mode int

const (
	PI Mode = iota
	PID
)

func (m Mode) String() string {
	switch m {
	case PI:
		return "pi"
	case PID:
		return "pid"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "pi" or "pid", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pi":
		return PI, nil
	case "pid":
		return PID, nil
	}
	return 0, fmt.Errorf("epid: unknown mode %q", s)
}

// Controller is a Type-C PID context. Fields are exported so callers can
// inspect the terms between the calc and sum steps (deadband, logging), but
// they should only be written through Init, InitT and the per-sample methods.
type Controller struct {
	Kp float64
	Ki float64
	Kd float64

	Xk1 float64 // x[k-1]
	Xk2 float64 // x[k-2]

	PTerm float64
	ITerm float64
	DTerm float64

	YOut float64 // y[k-1] before a sum, y[k] after

	// FiniteChecks enables the NaN/Inf validation in Init, InitT and the
	// NaN roll-back in the sum step.
	FiniteChecks bool
}

// New returns an uninitialized controller. Call Init or InitT before use.
func New(finiteChecks bool) *Controller {
	return &Controller{FiniteChecks: finiteChecks}
}

var initParams = []string{"xk_1", "xk_2", "y_previous", "kp", "ki", "kd"}

// Init sets the history, the previous output and the gains directly.
// All inputs are validated before anything is written, so on error the
// controller keeps its previous state. Zero gains are accepted and disable
// the corresponding term.
func (c *Controller) Init(xk1, xk2, yPrev, kp, ki, kd float64) error {
	if c == nil {
		return &ParamError{Param: "ctx", Err: ErrInit}
	}
	for i, g := range []float64{kp, ki, kd} {
		if g < 0 {
			return &ParamError{Param: initParams[3+i], Value: g, Err: ErrInit}
		}
	}
	if c.FiniteChecks {
		if err := checkFinite(initParams, xk1, xk2, yPrev, kp, ki, kd); err != nil {
			return err
		}
	}

	c.Xk1 = xk1
	c.Xk2 = xk2
	c.YOut = yPrev
	c.Kp = kp
	c.Ki = ki
	c.Kd = kd
	return nil
}

// TimeConstantGains converts an integral time ti and derivative time td,
// both in the unit of samplePeriod, into digital gains:
//
//	Ki = Kp * Ts / Ti
//	Kd = Kp * (Td / Ts)
func TimeConstantGains(kp, ti, td, samplePeriod float64) (ki, kd float64) {
	ki = (kp * samplePeriod) / ti
	kd = kp * (td / samplePeriod)
	return ki, kd
}

// InitT initializes from Kp and the time constants ti and td.
func (c *Controller) InitT(xk1, xk2, yPrev, kp, ti, td, samplePeriod float64) error {
	switch {
	case ti <= 0:
		return &ParamError{Param: "ti", Value: ti, Err: ErrInit}
	case td < 0:
		return &ParamError{Param: "td", Value: td, Err: ErrInit}
	case samplePeriod <= 0:
		return &ParamError{Param: "sample_period", Value: samplePeriod, Err: ErrInit}
	}
	ki, kd := TimeConstantGains(kp, ti, td, samplePeriod)
	return c.Init(xk1, xk2, yPrev, kp, ki, kd)
}

// PICalc computes P[k] and I[k] and shifts x[k-1]. DTerm is left as is.
func (c *Controller) PICalc(setpoint, measure float64) {
	c.PTerm = c.Kp * (c.Xk1 - measure)
	c.ITerm = c.Ki * (setpoint - measure)

	c.Xk1 = measure
}

// PIDCalc computes P[k], I[k] and D[k] and shifts the history.
// D uses x[k-1] and x[k-2] from before the shift.
func (c *Controller) PIDCalc(setpoint, measure float64) {
	c.PTerm = c.Kp * (c.Xk1 - measure)
	c.ITerm = c.Ki * (setpoint - measure)
	c.DTerm = c.Kd * (c.Xk1 + c.Xk1 - c.Xk2 - measure)

	c.Xk2 = c.Xk1
	c.Xk1 = measure
}

// PISum adds P[k]+I[k] to the output and saturates it.
func (c *Controller) PISum(outMin, outMax float64) float64 {
	return c.sum(c.PTerm+c.ITerm, outMin, outMax)
}

// PIDSum adds P[k]+I[k]+D[k] to the output and saturates it.
func (c *Controller) PIDSum(outMin, outMax float64) float64 {
	return c.sum(c.PTerm+c.ITerm+c.DTerm, outMin, outMax)
}

// sum accumulates delta into YOut. With finite checks a NaN result is
// discarded so the accumulator keeps its last good value. The upper bound is
// tested first; with outMin > outMax the output lands on one of the two
// bounds and never panics.
func (c *Controller) sum(delta, outMin, outMax float64) float64 {
	prev := c.YOut

	c.YOut += delta

	if c.FiniteChecks && math.IsNaN(c.YOut) {
		c.YOut = prev
	}

	if c.YOut > outMax {
		c.YOut = outMax
	} else if c.YOut < outMin {
		c.YOut = outMin
	}
	return c.YOut
}

// ILimit clamps I[k] into [iMin, iMax] as integrator anti-windup. Call it
// between the calc and sum steps.
func (c *Controller) ILimit(iMin, iMax float64) {
	if c.ITerm > iMax {
		c.ITerm = iMax
	} else if c.ITerm < iMin {
		c.ITerm = iMin
	}
}

// Calc runs PICalc or PIDCalc.
func (c *Controller) Calc(mode Mode, setpoint, measure float64) {
	if mode == PID {
		c.PIDCalc(setpoint, measure)
		return
	}
	c.PICalc(setpoint, measure)
}

// Sum runs PISum or PIDSum.
func (c *Controller) Sum(mode Mode, outMin, outMax float64) float64 {
	if mode == PID {
		return c.PIDSum(outMin, outMax)
	}
	return c.PISum(outMin, outMax)
}

// Delta is the change the next Sum call would add before saturation.
func (c *Controller) Delta(mode Mode) float64 {
	if mode == PID {
		return c.PTerm + c.ITerm + c.DTerm
	}
	return c.PTerm + c.ITerm
}
