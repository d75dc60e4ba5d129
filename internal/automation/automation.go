package automation

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/experiment"
	"github.com/san-kum/epid/internal/sim"
	"github.com/san-kum/epid/internal/storage"
)

// Scenario is a list of runs, each a set of overrides applied on top of a
// common base configuration.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Base        string         `yaml:"base"` // "plant/preset", empty for defaults
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Name      string    `yaml:"name"`
	Overrides yaml.Node `yaml:"overrides"`
	Save      bool      `yaml:"save"`
}

type StepResult struct {
	Name   string
	RunID  string
	Config *config.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	return &scenario, nil
}

// BaseConfig resolves the scenario's base preset.
func (s *Scenario) BaseConfig() (*config.Config, error) {
	if s.Base == "" {
		return config.DefaultConfig(), nil
	}
	plant, preset, ok := strings.Cut(s.Base, "/")
	if !ok {
		return nil, fmt.Errorf("scenario base %q: want plant/preset", s.Base)
	}
	cfg := config.GetPreset(plant, preset)
	if cfg == nil {
		return nil, fmt.Errorf("scenario base %q: no such preset", s.Base)
	}
	return cfg, nil
}

// StepConfig returns the base configuration with the step's overrides
// decoded over it. Keys absent from the overrides keep their base value.
func (s *Scenario) StepConfig(i int) (*config.Config, error) {
	cfg, err := s.BaseConfig()
	if err != nil {
		return nil, err
	}
	step := s.Steps[i]
	if !step.Overrides.IsZero() {
		if err := step.Overrides.Decode(cfg); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
	}
	return cfg, nil
}

// RunScenario runs the steps in order. Steps marked save are written to st
// when st is not nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, logger *log.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if logger != nil {
			logger.Printf("scenario %s: step %d/%d %s", scenario.Name, i+1, len(scenario.Steps), step.Name)
		}

		cfg, err := scenario.StepConfig(i)
		if err != nil {
			return results, err
		}
		exp, err := registry.Build(cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d (%s) run: %w", i+1, step.Name, err)
		}

		sr := StepResult{Name: step.Name, Config: cfg, Result: result}
		if step.Save && st != nil {
			sr.RunID, err = st.Save(exp.Metadata(step.Name, result), result)
			if err != nil {
				return results, fmt.Errorf("step %d (%s) save: %w", i+1, step.Name, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
