package control

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/san-kum/epid/internal/sim"
	"github.com/san-kum/epid/pkg/epid"
)

// Control vector layout.
const (
	CV = iota
	PTerm
	ITerm
	DTerm
	Setpoint
	Dim
)

// Labels names the control vector entries.
var Labels = []string{"cv", "p", "i", "d", "sp"}

type FilterTarget string

const (
	FilterNone        FilterTarget = "none"
	FilterMeasurement FilterTarget = "measurement"
	FilterDerivative  FilterTarget = "derivative"
)

// SetpointStep changes the setpoint by Delta at the first sample with t >= At.
type SetpointStep struct {
	At    float64 `yaml:"at" json:"at"`
	Delta float64 `yaml:"delta" json:"delta"`
}

// Gains selects the initializer: with Ti > 0 the time-constant form
// (Kp, Ti, Td) is used, otherwise Kp, Ki, Kd directly.
type Gains struct {
	Kp, Ki, Kd float64
	Ti, Td     float64
}

type Options struct {
	Mode          epid.Mode
	SamplePeriod  float64
	Setpoint      float64
	Schedule      []SetpointStep
	InitialOutput float64
	OutMin        float64
	OutMax        float64
	ILimit        bool
	IMin          float64
	IMax          float64
	Deadband      float64
	Filter        FilterTarget
	Alpha         float64
	MeasureIndex  int
	FiniteChecks  bool
}

type Loop struct {
	opts     Options
	pid      *epid.Controller
	lpf      *epid.LowPass
	setpoint float64
	base     float64
	next     int
	nans     int
	logger   *log.Logger
}

// NewLoop initializes the controller with the history seeded from the first
// measurement x0. Initialization errors from epid are returned unchanged so
// callers can test them with errors.Is.
func NewLoop(g Gains, opts Options, x0 float64, logger *log.Logger) (*Loop, error) {
	if opts.Filter == "" {
		opts.Filter = FilterNone
	}
	schedule := make([]SetpointStep, len(opts.Schedule))
	copy(schedule, opts.Schedule)
	sort.SliceStable(schedule, func(i, j int) bool { return schedule[i].At < schedule[j].At })
	opts.Schedule = schedule

	pid := epid.New(opts.FiniteChecks)
	var err error
	if g.Ti > 0 {
		err = pid.InitT(x0, x0, opts.InitialOutput, g.Kp, g.Ti, g.Td, opts.SamplePeriod)
	} else {
		err = pid.Init(x0, x0, opts.InitialOutput, g.Kp, g.Ki, g.Kd)
	}
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}

	l := &Loop{
		opts:     opts,
		pid:      pid,
		setpoint: opts.Setpoint,
		base:     opts.Setpoint,
		logger:   logger,
	}

	switch opts.Filter {
	case FilterNone:
	case FilterMeasurement, FilterDerivative:
		l.lpf = epid.NewLowPass(opts.FiniteChecks)
		// The filter seeds with alpha*x, so pre-divide to start at the
		// measurement instead of near zero.
		seed := 0.0
		if opts.Filter == FilterMeasurement && opts.Alpha > 0 {
			seed = x0 / opts.Alpha
		}
		if err := l.lpf.Init(opts.Alpha, seed); err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
	default:
		return nil, fmt.Errorf("control: unknown filter target %q", opts.Filter)
	}

	l.logf("init %s kp=%g ki=%g kd=%g sp=%g out=[%g, %g]",
		opts.Mode, pid.Kp, pid.Ki, pid.Kd, opts.Setpoint, opts.OutMin, opts.OutMax)
	return l, nil
}

// Compute runs one sample of the loop.
func (l *Loop) Compute(x sim.State, t float64) sim.Control {
	l.advance(t)

	pv := x[l.opts.MeasureIndex]
	if l.opts.Filter == FilterMeasurement {
		pv = l.lpf.Update(pv)
	}

	l.pid.Calc(l.opts.Mode, l.setpoint, pv)
	if l.opts.Filter == FilterDerivative && l.opts.Mode == epid.PID {
		l.pid.DTerm = l.lpf.Update(l.pid.DTerm)
	}
	if l.opts.ILimit {
		l.pid.ILimit(l.opts.IMin, l.opts.IMax)
	}

	delta := l.pid.Delta(l.opts.Mode)
	if math.IsNaN(delta) {
		l.nans++
		l.logf("t=%.3f: NaN delta (pv=%g), output held at %g", t, pv, l.pid.YOut)
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) || math.Abs(delta) >= l.opts.Deadband {
		l.pid.Sum(l.opts.Mode, l.opts.OutMin, l.opts.OutMax)
	}

	u := make(sim.Control, Dim)
	u[CV] = l.pid.YOut
	u[PTerm] = l.pid.PTerm
	u[ITerm] = l.pid.ITerm
	if l.opts.Mode == epid.PID {
		u[DTerm] = l.pid.DTerm
	}
	u[Setpoint] = l.setpoint
	return u
}

func (l *Loop) advance(t float64) {
	half := l.opts.SamplePeriod / 2
	for l.next < len(l.opts.Schedule) && t+half >= l.opts.Schedule[l.next].At {
		step := l.opts.Schedule[l.next]
		l.setpoint += step.Delta
		l.next++
		l.logf("t=%.3f: setpoint %+g -> %g", t, step.Delta, l.setpoint)
	}
}

// Controller exposes the wrapped context for inspection.
func (l *Loop) Controller() *epid.Controller { return l.pid }

// Setpoint returns the setpoint currently in effect.
func (l *Loop) Setpoint() float64 { return l.setpoint }

// NaNs counts samples whose delta was NaN.
func (l *Loop) NaNs() int { return l.nans }

func (l *Loop) Options() Options { return l.opts }

func (l *Loop) GetParams() map[string]float64 {
	return map[string]float64{
		"kp":       l.pid.Kp,
		"ki":       l.pid.Ki,
		"kd":       l.pid.Kd,
		"setpoint": l.base,
	}
}

// SetParam retunes a gain or the base setpoint. Gains follow the same
// non-negative rule as epid.Controller.Init.
func (l *Loop) SetParam(name string, value float64) error {
	switch name {
	case "kp", "ki", "kd":
		if value < 0 || math.IsNaN(value) {
			return &epid.ParamError{Param: name, Value: value, Err: epid.ErrInit}
		}
	}
	switch name {
	case "kp":
		l.pid.Kp = value
	case "ki":
		l.pid.Ki = value
	case "kd":
		l.pid.Kd = value
	case "setpoint":
		l.setpoint += value - l.base
		l.base = value
	default:
		return fmt.Errorf("control: unknown parameter %q", name)
	}
	l.logf("set %s = %g", name, value)
	return nil
}

func (l *Loop) logf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Printf(format, args...)
	}
}
