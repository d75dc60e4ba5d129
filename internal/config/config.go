package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/internal/sim"
	"github.com/san-kum/epid/pkg/epid"
)

const (
	DefaultSamplePeriod = 0.1
	DefaultDuration     = 360.0
	DefaultSetpoint     = 70.0
	DefaultKp           = 500.0
	DefaultKi           = 10.0
	DefaultKd           = 200.0
	DefaultOutMax       = 500.0
	DefaultSteadyWindow = 30.0

	// EnvPrefix prefixes environment overrides, e.g. EPID_GAINS_KP.
	EnvPrefix = "EPID"
)

type Config struct {
	Plant        string  `yaml:"plant" mapstructure:"plant"`
	Integrator   string  `yaml:"integrator" mapstructure:"integrator"`
	Mode         string  `yaml:"mode" mapstructure:"mode"`
	SamplePeriod float64 `yaml:"sample_period" mapstructure:"sample_period"`
	Duration     float64 `yaml:"duration" mapstructure:"duration"`
	FiniteChecks bool    `yaml:"finite_checks" mapstructure:"finite_checks"`
	Setpoint     float64 `yaml:"setpoint" mapstructure:"setpoint"`
	Deadband     float64 `yaml:"deadband" mapstructure:"deadband"`

	Initial InitialConfig `yaml:"initial" mapstructure:"initial"`
	Gains   GainsConfig   `yaml:"gains" mapstructure:"gains"`
	Output  LimitsConfig  `yaml:"output" mapstructure:"output"`
	ILimit  ILimitConfig  `yaml:"ilimit" mapstructure:"ilimit"`
	Filter  FilterConfig  `yaml:"filter" mapstructure:"filter"`

	Schedule     []control.SetpointStep `yaml:"schedule,omitempty" mapstructure:"schedule"`
	Disturbances []sim.Disturbance      `yaml:"disturbances,omitempty" mapstructure:"disturbances"`
	PlantParams  map[string]float64     `yaml:"plant_params,omitempty" mapstructure:"plant_params"`

	// SteadyWindow is the trailing span in seconds used by the steady-state
	// error metric.
	SteadyWindow float64           `yaml:"steady_window" mapstructure:"steady_window"`
	Labels       map[string]string `yaml:"labels,omitempty" mapstructure:"labels"`
}

type InitialConfig struct {
	Measurement float64 `yaml:"measurement" mapstructure:"measurement"`
	Output      float64 `yaml:"output" mapstructure:"output"`
}

// GainsConfig holds either Kp, Ki, Kd or, with Ti > 0, Kp and the time
// constants Ti, Td.
type GainsConfig struct {
	Kp float64 `yaml:"kp" mapstructure:"kp"`
	Ki float64 `yaml:"ki" mapstructure:"ki"`
	Kd float64 `yaml:"kd" mapstructure:"kd"`
	Ti float64 `yaml:"ti" mapstructure:"ti"`
	Td float64 `yaml:"td" mapstructure:"td"`
}

type LimitsConfig struct {
	Min float64 `yaml:"min" mapstructure:"min"`
	Max float64 `yaml:"max" mapstructure:"max"`
}

type ILimitConfig struct {
	Enabled bool    `yaml:"enabled" mapstructure:"enabled"`
	Min     float64 `yaml:"min" mapstructure:"min"`
	Max     float64 `yaml:"max" mapstructure:"max"`
}

// FilterConfig selects the optional low-pass filter. Alpha wins over
// CutoffHz when both are set.
type FilterConfig struct {
	Target   string  `yaml:"target" mapstructure:"target"`
	CutoffHz float64 `yaml:"cutoff_hz" mapstructure:"cutoff_hz"`
	Alpha    float64 `yaml:"alpha" mapstructure:"alpha"`
}

// DefaultConfig is the reference heater programme without events.
func DefaultConfig() *Config {
	return &Config{
		Plant:        "heater",
		Integrator:   "euler",
		Mode:         "pid",
		SamplePeriod: DefaultSamplePeriod,
		Duration:     DefaultDuration,
		FiniteChecks: true,
		Setpoint:     DefaultSetpoint,
		Initial:      InitialConfig{Measurement: 20},
		Gains: GainsConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
		Output:       LimitsConfig{Min: 0, Max: DefaultOutMax},
		Filter:       FilterConfig{Target: string(control.FilterNone)},
		SteadyWindow: DefaultSteadyWindow,
	}
}

// Load reads a YAML file over the defaults and applies EPID_* environment
// overrides. An empty path loads the defaults alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := v.MergeConfig(f); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the harness cannot run with. Gain and filter
// ranges are left to epid so its errors reach the caller unchanged.
func (c *Config) Validate() error {
	if c.SamplePeriod <= 0 {
		return fmt.Errorf("config: sample_period must be positive, got %g", c.SamplePeriod)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if _, err := epid.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Deadband < 0 {
		return fmt.Errorf("config: deadband must not be negative, got %g", c.Deadband)
	}
	switch control.FilterTarget(c.Filter.Target) {
	case "", control.FilterNone:
	case control.FilterMeasurement, control.FilterDerivative:
		if c.Filter.Alpha == 0 && c.Filter.CutoffHz <= 0 {
			return fmt.Errorf("config: filter %q needs alpha or cutoff_hz", c.Filter.Target)
		}
	default:
		return fmt.Errorf("config: unknown filter target %q", c.Filter.Target)
	}
	return nil
}

// Alpha resolves the filter smoothing factor.
func (c *Config) Alpha() float64 {
	if c.Filter.Alpha != 0 {
		return c.Filter.Alpha
	}
	return epid.SmoothingFactor(c.Filter.CutoffHz, c.SamplePeriod)
}

// LoopSettings converts the controller section into control.NewLoop
// arguments.
func (c *Config) LoopSettings() (control.Gains, control.Options, error) {
	mode, err := epid.ParseMode(c.Mode)
	if err != nil {
		return control.Gains{}, control.Options{}, err
	}
	gains := control.Gains{
		Kp: c.Gains.Kp,
		Ki: c.Gains.Ki,
		Kd: c.Gains.Kd,
		Ti: c.Gains.Ti,
		Td: c.Gains.Td,
	}
	opts := control.Options{
		Mode:          mode,
		SamplePeriod:  c.SamplePeriod,
		Setpoint:      c.Setpoint,
		Schedule:      c.Schedule,
		InitialOutput: c.Initial.Output,
		OutMin:        c.Output.Min,
		OutMax:        c.Output.Max,
		ILimit:        c.ILimit.Enabled,
		IMin:          c.ILimit.Min,
		IMax:          c.ILimit.Max,
		Deadband:      c.Deadband,
		Filter:        control.FilterTarget(c.Filter.Target),
		FiniteChecks:  c.FiniteChecks,
	}
	if opts.Filter != "" && opts.Filter != control.FilterNone {
		opts.Alpha = c.Alpha()
	}
	return gains, opts, nil
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.SamplePeriod,
		Duration:      c.Duration,
		ValidateState: true,
		Disturbances:  c.Disturbances,
	}
}

// SteadyWindowSamples converts SteadyWindow into a sample count.
func (c *Config) SteadyWindowSamples() int {
	if c.SamplePeriod <= 0 {
		return 1
	}
	n := int(c.SteadyWindow/c.SamplePeriod + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

func (c *Config) Clone() *Config {
	out := *c
	out.Schedule = append([]control.SetpointStep(nil), c.Schedule...)
	out.Disturbances = append([]sim.Disturbance(nil), c.Disturbances...)
	if c.PlantParams != nil {
		out.PlantParams = make(map[string]float64, len(c.PlantParams))
		for k, v := range c.PlantParams {
			out.PlantParams[k] = v
		}
	}
	if c.Labels != nil {
		out.Labels = make(map[string]string, len(c.Labels))
		for k, v := range c.Labels {
			out.Labels[k] = v
		}
	}
	return &out
}
