package config

import (
	"sort"

	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/internal/sim"
)

// referenceEvents is the heater demo programme: the water is cooled by 7 °C
// at 100 s, the setpoint is raised by 7 at 150 s and lowered by 2 at 220 s.
var (
	referenceDisturbances = []sim.Disturbance{{At: 100, Index: 0, Delta: -7}}
	referenceSchedule     = []control.SetpointStep{{At: 150, Delta: 7}, {At: 220, Delta: -2}}
)

var Presets = map[string]map[string]*Config{
	"heater": {
		"reference": {
			Plant: "heater", Integrator: "euler", Mode: "pid",
			SamplePeriod: 0.1, Duration: 360, FiniteChecks: true, Setpoint: 70,
			Initial:      InitialConfig{Measurement: 20},
			Gains:        GainsConfig{Kp: 500, Ki: 10, Kd: 200},
			Output:       LimitsConfig{Min: 0, Max: 500},
			Filter:       FilterConfig{Target: "none"},
			Schedule:     referenceSchedule,
			Disturbances: referenceDisturbances,
			SteadyWindow: 30,
		},
		"pi": {
			Plant: "heater", Integrator: "euler", Mode: "pi",
			SamplePeriod: 0.1, Duration: 360, FiniteChecks: true, Setpoint: 70,
			Initial:      InitialConfig{Measurement: 20},
			Gains:        GainsConfig{Kp: 500, Ki: 10},
			Output:       LimitsConfig{Min: 0, Max: 500},
			Filter:       FilterConfig{Target: "none"},
			Schedule:     referenceSchedule,
			Disturbances: referenceDisturbances,
			SteadyWindow: 30,
		},
		"filtered": {
			Plant: "heater", Integrator: "euler", Mode: "pid",
			SamplePeriod: 0.1, Duration: 360, FiniteChecks: true, Setpoint: 70,
			Initial:      InitialConfig{Measurement: 20},
			Gains:        GainsConfig{Kp: 500, Ki: 10, Kd: 200},
			Output:       LimitsConfig{Min: 0, Max: 500},
			Filter:       FilterConfig{Target: "derivative", CutoffHz: 1},
			Schedule:     referenceSchedule,
			Disturbances: referenceDisturbances,
			SteadyWindow: 30,
		},
	},
	"motor": {
		"step": {
			Plant: "motor", Integrator: "rk4", Mode: "pi",
			SamplePeriod: 0.01, Duration: 5, FiniteChecks: true, Setpoint: 100,
			Gains:        GainsConfig{Kp: 0.05, Ti: 0.5},
			Output:       LimitsConfig{Min: -12, Max: 12},
			Filter:       FilterConfig{Target: "none"},
			SteadyWindow: 1,
		},
		"antiwindup": {
			Plant: "motor", Integrator: "rk4", Mode: "pid",
			SamplePeriod: 0.01, Duration: 5, FiniteChecks: true, Setpoint: 100,
			Gains:        GainsConfig{Kp: 0.05, Ki: 0.01, Kd: 0.01},
			Output:       LimitsConfig{Min: -12, Max: 12},
			ILimit:       ILimitConfig{Enabled: true, Min: -0.5, Max: 0.5},
			Filter:       FilterConfig{Target: "measurement", CutoffHz: 10},
			Disturbances: []sim.Disturbance{{At: 2.5, Index: 0, Delta: -30}},
			SteadyWindow: 1,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(plant, preset string) *Config {
	plantPresets, ok := Presets[plant]
	if !ok {
		return nil
	}
	cfg, ok := plantPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(plant string) []string {
	plantPresets, ok := Presets[plant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(plantPresets))
	for name := range plantPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
