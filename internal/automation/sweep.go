package automation

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/experiment"
)

// Sweep evaluates one parameter over an evenly spaced range. Every value
// gets its own controller and plant; nothing is chosen or written back.
type Sweep struct {
	Base    *config.Config
	Param   string
	Min     float64
	Max     float64
	Steps   int
	Workers int
}

type SweepResult struct {
	Value   float64
	Final   float64
	Metrics map[string]float64
	Err     error
}

// SetParam writes a named harness parameter into cfg.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "kp":
		cfg.Gains.Kp = v
	case "ki":
		cfg.Gains.Ki = v
	case "kd":
		cfg.Gains.Kd = v
	case "ti":
		cfg.Gains.Ti = v
	case "td":
		cfg.Gains.Td = v
	case "setpoint":
		cfg.Setpoint = v
	case "deadband":
		cfg.Deadband = v
	case "alpha":
		cfg.Filter.Alpha = v
	case "cutoff_hz":
		cfg.Filter.CutoffHz = v
	default:
		return fmt.Errorf("sweep: unknown parameter %q", name)
	}
	return nil
}

// Values lists the swept values, Min and Max included.
func (s *Sweep) Values() []float64 {
	if s.Steps <= 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.Steps-1)
	vals := make([]float64, s.Steps)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	vals[len(vals)-1] = s.Max
	return vals
}

// RunSweep runs the values in parallel. A value whose loop cannot be built
// or run is reported in its SweepResult.Err; only cancellation aborts the
// sweep.
func RunSweep(ctx context.Context, sweep *Sweep, registry *experiment.Registry) ([]SweepResult, error) {
	// Unknown names fail here rather than once per value.
	if err := SetParam(sweep.Base.Clone(), sweep.Param, 0); err != nil {
		return nil, err
	}

	values := sweep.Values()
	results := make([]SweepResult, len(values))

	workers := sweep.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, v := range values {
		g.Go(func() error {
			results[i] = runOne(ctx, sweep, registry, v)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(ctx context.Context, sweep *Sweep, registry *experiment.Registry, v float64) SweepResult {
	res := SweepResult{Value: v}

	cfg := sweep.Base.Clone()
	if err := SetParam(cfg, sweep.Param, v); err != nil {
		res.Err = err
		return res
	}
	exp, err := registry.Build(cfg, nil)
	if err != nil {
		res.Err = err
		return res
	}
	result, err := exp.Run(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	if len(result.Errors) > 0 {
		res.Err = result.Errors[0]
	}
	res.Metrics = result.Metrics
	res.Final = result.States[len(result.States)-1][0]
	return res
}
