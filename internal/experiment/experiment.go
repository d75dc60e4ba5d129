package experiment

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/internal/sim"
	"github.com/san-kum/epid/internal/storage"
)

// Experiment is one configured closed loop: plant, integrator, controller
// and metrics, ready to run.
type Experiment struct {
	cfg       *config.Config
	labels    []string
	plant     sim.Dynamics
	loop      *control.Loop
	simulator *sim.Simulator
	logger    *log.Logger
}

// Build wires cfg with the default registry.
func Build(cfg *config.Config, logger *log.Logger) (*Experiment, error) {
	return NewRegistry().Build(cfg, logger)
}

func (r *Registry) Build(cfg *config.Config, logger *log.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dyn, err := r.GetPlant(cfg.Plant)
	if err != nil {
		return nil, err
	}
	if err := applyPlantParams(dyn, cfg.PlantParams); err != nil {
		return nil, err
	}
	integ, err := r.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	gains, opts, err := cfg.LoopSettings()
	if err != nil {
		return nil, err
	}
	loop, err := control.NewLoop(gains, opts, cfg.Initial.Measurement, logger)
	if err != nil {
		return nil, err
	}

	s := sim.New(dyn, integ, loop)
	for _, m := range r.DefaultMetrics(cfg) {
		s.AddMetric(m)
	}
	if logger != nil {
		s.AddObserver(&eventLog{logger: logger})
	}

	return &Experiment{
		cfg:       cfg,
		labels:    r.StateLabels(cfg.Plant),
		plant:     dyn,
		loop:      loop,
		simulator: s,
		logger:    logger,
	}, nil
}

func applyPlantParams(dyn sim.Dynamics, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	c, ok := dyn.(sim.Configurable)
	if !ok {
		return fmt.Errorf("plant has no parameters")
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}

// InitialState is the plant state at t = 0: the initial measurement in
// entry 0, zeros elsewhere.
func (e *Experiment) InitialState() sim.State {
	x0 := make(sim.State, e.plant.StateDim())
	x0[0] = e.cfg.Initial.Measurement
	return x0
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	result, err := e.simulator.Run(ctx, e.InitialState(), e.cfg.SimConfig())
	if err != nil {
		return result, err
	}
	result.Metrics["nan_events"] = float64(e.loop.NaNs())
	if e.logger != nil {
		e.logger.Printf("run done: %d steps, %d errors, final cv=%g",
			result.StepsTaken, len(result.Errors), e.loop.Controller().YOut)
	}
	return result, nil
}

// Metadata describes a finished run for storage.
func (e *Experiment) Metadata(name string, result *sim.Result) storage.RunMetadata {
	return storage.RunMetadata{
		Name:          name,
		Plant:         e.cfg.Plant,
		Integrator:    e.cfg.Integrator,
		Mode:          e.cfg.Mode,
		SamplePeriod:  e.cfg.SamplePeriod,
		Duration:      e.cfg.Duration,
		NaNs:          e.loop.NaNs(),
		Metrics:       result.Metrics,
		Labels:        e.cfg.Labels,
		StateLabels:   e.labels,
		ControlLabels: control.Labels,
		Config:        e.cfg,
	}
}

func (e *Experiment) Config() *config.Config       { return e.cfg }
func (e *Experiment) Loop() *control.Loop          { return e.loop }
func (e *Experiment) Plant() sim.Dynamics          { return e.plant }
func (e *Experiment) StateLabels() []string        { return e.labels }
func (e *Experiment) GetSimulator() *sim.Simulator { return e.simulator }

type eventLog struct {
	logger *log.Logger
}

func (l *eventLog) OnStep(x sim.State, u sim.Control, t float64) {}

func (l *eventLog) OnDisturbance(d sim.Disturbance, t float64) {
	l.logger.Printf("t=%.3f: disturbance %+g on x%d", t, d.Delta, d.Index)
}
