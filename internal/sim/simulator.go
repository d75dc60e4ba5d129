package sim

import (
	"context"
	"fmt"
)

type Simulator struct {
	dyn        Dynamics
	integrator Integrator
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(dyn Dynamics, integrator Integrator, controller Controller) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run simulates Duration/Dt samples starting from x0. A state that turns
// invalid stops the run early; the error is recorded in Result.Errors.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	result := &Result{
		States:   make([]State, 0, steps+1),
		Controls: make([]Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	pending := NewDisturbanceQueue(cfg.Disturbances)

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, d := range pending.Apply(x, t, dt) {
			s.notifyDisturbance(d, t)
		}

		newX, u := s.Step(x, t, dt)

		if cfg.ValidateState && !newX.IsValid() {
			err := &SimulationError{Step: i, Time: t, State: newX, Wrapped: ErrInvalidState}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t = float64(i+1) * dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// Step runs one sample: the controller sees x at time t, metrics and
// observers see the sample, and the plant is advanced by dt.
func (s *Simulator) Step(x State, t, dt float64) (State, Control) {
	u := s.controller.Compute(x, t)

	for _, m := range s.metrics {
		m.Observe(x, u, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, u, t)
	}

	return s.integrator.Step(s.dyn, x, u, t, dt), u
}

func (s *Simulator) notifyDisturbance(d Disturbance, t float64) {
	for _, obs := range s.observers {
		if do, ok := obs.(DisturbanceObserver); ok {
			do.OnDisturbance(d, t)
		}
	}
}

func (s *Simulator) validateConfig(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrBadConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrBadConfig, cfg.Duration)
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("%w: plant has %d states, x0 has %d", ErrDimensionMismatch, s.dyn.StateDim(), len(x0))
	}
	for _, d := range cfg.Disturbances {
		if d.Index < 0 || d.Index >= len(x0) {
			return fmt.Errorf("%w: disturbance index %d", ErrDimensionMismatch, d.Index)
		}
	}
	return nil
}
