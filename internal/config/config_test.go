package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/pkg/epid"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Plant != "heater" {
		t.Errorf("expected plant heater, got %s", cfg.Plant)
	}
	if cfg.SamplePeriod <= 0 {
		t.Error("sample period should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.yaml")
	data := []byte(`
mode: pi
setpoint: 55
gains:
  kp: 3
  ki: 0.5
schedule:
  - at: 10
    delta: 5
disturbances:
  - at: 4
    index: 0
    delta: -2
`)
	require.NoError(t, os.WriteFile(path, data, 0644))
	t.Setenv("EPID_GAINS_KP", "12")
	t.Setenv("EPID_SAMPLE_PERIOD", "0.5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pi", cfg.Mode)
	assert.Equal(t, 55.0, cfg.Setpoint)
	assert.Equal(t, 12.0, cfg.Gains.Kp)
	assert.Equal(t, 0.5, cfg.Gains.Ki)
	assert.Equal(t, 0.5, cfg.SamplePeriod)
	assert.Equal(t, DefaultOutMax, cfg.Output.Max)
	require.Len(t, cfg.Schedule, 1)
	assert.Equal(t, control.SetpointStep{At: 10, Delta: 5}, cfg.Schedule[0])
	require.Len(t, cfg.Disturbances, 1)
	assert.Equal(t, -2.0, cfg.Disturbances[0].Delta)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	want := GetPreset("heater", "reference")
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.Schedule, got.Schedule)
	assert.Equal(t, want.Disturbances, got.Disturbances)
	assert.Equal(t, want.Gains, got.Gains)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero sample period", func(c *Config) { c.SamplePeriod = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"unknown mode", func(c *Config) { c.Mode = "pd" }},
		{"negative deadband", func(c *Config) { c.Deadband = -1 }},
		{"unknown filter", func(c *Config) { c.Filter.Target = "output" }},
		{"filter without cutoff", func(c *Config) { c.Filter.Target = "measurement" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoopSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Filter = FilterConfig{Target: "measurement", CutoffHz: 1}

	gains, opts, err := cfg.LoopSettings()
	require.NoError(t, err)
	assert.Equal(t, 500.0, gains.Kp)
	assert.Equal(t, epid.PID, opts.Mode)
	assert.Equal(t, control.FilterMeasurement, opts.Filter)
	assert.InDelta(t, epid.SmoothingFactor(1, 0.1), opts.Alpha, 1e-12)

	cfg.Filter.Alpha = 0.25
	_, opts, err = cfg.LoopSettings()
	require.NoError(t, err)
	assert.Equal(t, 0.25, opts.Alpha)
}

func TestSteadyWindowSamples(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 300, cfg.SteadyWindowSamples())

	cfg.SteadyWindow = 0
	assert.Equal(t, 1, cfg.SteadyWindowSamples())
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("heater", "reference")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Gains.Kp != 500 {
		t.Errorf("expected kp 500, got %f", cfg.Gains.Kp)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected preset to validate, got %v", err)
	}

	// Presets are copies.
	cfg.Schedule[0].Delta = 99
	if GetPreset("heater", "reference").Schedule[0].Delta != 7 {
		t.Error("expected preset to be unaffected by changes to a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("heater", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "reference"); cfg != nil {
		t.Error("expected nil for nonexistent plant")
	}
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"filtered", "pi", "reference"}, ListPresets("heater"))
	assert.Nil(t, ListPresets("nonexistent"))
}

func TestAllPresetsValidate(t *testing.T) {
	for plant, presets := range Presets {
		for name, cfg := range presets {
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", plant, name, err)
			}
		}
	}
}
