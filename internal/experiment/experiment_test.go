package experiment

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/internal/plant"
	"github.com/san-kum/epid/pkg/epid"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"heater", "motor"}, r.ListPlants())
	assert.Equal(t, []string{"euler", "rk4"}, r.ListIntegrators())
	assert.Equal(t, []string{"temp"}, r.StateLabels("heater"))

	_, err := r.GetPlant("boiler")
	assert.Error(t, err)
	_, err = r.GetIntegrator("verlet")
	assert.Error(t, err)
}

func TestHeaterReferenceRun(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	cfg := config.GetPreset("heater", "reference")
	exp, err := Build(cfg, logger)
	require.NoError(t, err)

	result, err := exp.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	assert.Equal(t, 3600, result.StepsTaken)

	// 70 + 7 - 2 after both setpoint steps.
	final := result.States[len(result.States)-1][0]
	assert.InDelta(t, 75.0, final, 0.5)

	last := result.Controls[len(result.Controls)-1]
	assert.Equal(t, 75.0, last[control.Setpoint])
	assert.GreaterOrEqual(t, last[control.CV], 0.0)
	assert.LessOrEqual(t, last[control.CV], 500.0)

	for _, name := range []string{"control_effort", "saturation", "iae", "overshoot_pct", "steady_state_rms", "nan_events"} {
		assert.Contains(t, result.Metrics, name)
	}
	assert.Equal(t, 0.0, result.Metrics["nan_events"])
	assert.Less(t, result.Metrics["steady_state_rms"], 1.0)

	logs := buf.String()
	assert.Contains(t, logs, "disturbance -7")
	assert.Contains(t, logs, "setpoint +7")
	assert.Contains(t, logs, "run done")

	meta := exp.Metadata("ref", result)
	assert.Equal(t, "heater", meta.Plant)
	assert.Equal(t, []string{"temp"}, meta.StateLabels)
	assert.Equal(t, control.Labels, meta.ControlLabels)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		is     error
	}{
		{"unknown plant", func(c *config.Config) { c.Plant = "boiler" }, nil},
		{"unknown integrator", func(c *config.Config) { c.Integrator = "verlet" }, nil},
		{"invalid config", func(c *config.Config) { c.SamplePeriod = 0 }, nil},
		{"negative gain", func(c *config.Config) { c.Gains.Kd = -1 }, epid.ErrInit},
		{"non-finite gain", func(c *config.Config) { c.Gains.Ki = math.Inf(1) }, epid.ErrFloat},
		{"bad alpha", func(c *config.Config) { c.Filter = config.FilterConfig{Target: "measurement", Alpha: 2} }, epid.ErrInit},
		{"bad plant param", func(c *config.Config) { c.Plant = "motor"; c.PlantParams = map[string]float64{"tau": 0} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.modify(cfg)
			_, err := Build(cfg, nil)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestPlantParamsApplied(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PlantParams = map[string]float64{"room_temp": 15}

	exp, err := Build(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 15.0, exp.Plant().(*plant.Heater).RoomTemp)
}

func TestRunCanceled(t *testing.T) {
	exp, err := Build(config.DefaultConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = exp.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
