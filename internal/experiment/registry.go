package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/integrators"
	"github.com/san-kum/epid/internal/metrics"
	"github.com/san-kum/epid/internal/plant"
	"github.com/san-kum/epid/internal/sim"
)

type plantEntry struct {
	build  func() sim.Dynamics
	labels []string
}

type Registry struct {
	plants      map[string]plantEntry
	integrators map[string]func() sim.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		plants:      make(map[string]plantEntry),
		integrators: make(map[string]func() sim.Integrator),
	}

	r.RegisterPlant("heater", []string{"temp"}, func() sim.Dynamics { return plant.NewHeater() })
	r.RegisterPlant("motor", []string{"speed"}, func() sim.Dynamics { return plant.NewMotor() })

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }

	return r
}

// RegisterPlant adds or replaces a plant. labels name its state entries.
func (r *Registry) RegisterPlant(name string, labels []string, build func() sim.Dynamics) {
	r.plants[name] = plantEntry{build: build, labels: labels}
}

func (r *Registry) GetPlant(name string) (sim.Dynamics, error) {
	entry, ok := r.plants[name]
	if !ok {
		return nil, fmt.Errorf("unknown plant: %s", name)
	}
	return entry.build(), nil
}

func (r *Registry) StateLabels(name string) []string {
	return r.plants[name].labels
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListPlants() []string {
	return sortedKeys(r.plants)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics are the loop metrics recorded for every run. The measured
// value is state entry 0.
func (r *Registry) DefaultMetrics(cfg *config.Config) []sim.Metric {
	return []sim.Metric{
		metrics.NewControlEffort(),
		metrics.NewTravel(),
		metrics.NewSaturation(cfg.Output.Min, cfg.Output.Max),
		metrics.NewIAE(0, cfg.SamplePeriod),
		metrics.NewOvershoot(0),
		metrics.NewSteadyState(0, cfg.SteadyWindowSamples()),
	}
}
