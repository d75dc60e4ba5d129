package automation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/experiment"
)

// MonteCarloConfig checks a fixed controller against plants whose
// parameters are scaled by a random factor in [1-Spread, 1+Spread].
type MonteCarloConfig struct {
	Base      *config.Config
	Params    []string // plant parameters to perturb
	Spread    float64
	NumTrials int
	Seed      int64
}

type MonteCarloResult struct {
	TrialID     int
	PlantParams map[string]float64
	Metrics     map[string]float64
	Stable      bool // ran to the end without an invalid state
}

// MonteCarloSummary is the mean and standard deviation of each metric over
// the stable trials.
type MonteCarloSummary struct {
	Stable   int
	Unstable int
	Mean     map[string]float64
	StdDev   map[string]float64
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	dyn, err := registry.GetPlant(cfg.Base.Plant)
	if err != nil {
		return nil, err
	}
	nominal := map[string]float64{}
	if c, ok := dyn.(interface{ GetParams() map[string]float64 }); ok {
		nominal = c.GetParams()
	}
	for _, p := range cfg.Params {
		if _, ok := nominal[p]; !ok {
			return nil, fmt.Errorf("monte carlo: plant %s has no parameter %q", cfg.Base.Plant, p)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialCfg := cfg.Base.Clone()
		trialCfg.PlantParams = make(map[string]float64, len(cfg.Params))
		for _, p := range cfg.Params {
			trialCfg.PlantParams[p] = nominal[p] * (1 + (rng.Float64()*2-1)*cfg.Spread)
		}

		exp, err := registry.Build(trialCfg, nil)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, MonteCarloResult{
			TrialID:     trial,
			PlantParams: trialCfg.PlantParams,
			Metrics:     result.Metrics,
			Stable:      len(result.Errors) == 0,
		})
	}
	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) MonteCarloSummary {
	sum := MonteCarloSummary{
		Mean:   map[string]float64{},
		StdDev: map[string]float64{},
	}
	values := map[string][]float64{}
	for _, r := range results {
		if !r.Stable {
			sum.Unstable++
			continue
		}
		sum.Stable++
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
	}

	for name, vals := range values {
		mean, std := stat.MeanStdDev(vals, nil)
		sum.Mean[name] = mean
		sum.StdDev[name] = std
	}
	return sum
}
