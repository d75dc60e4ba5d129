package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/experiment"
)

func heaterFactory() (*experiment.Experiment, error) {
	return experiment.Build(config.DefaultConfig(), nil)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLiveSteps(t *testing.T) {
	m, err := NewModel(heaterFactory, 5)
	require.NoError(t, err)

	m = update(t, m, TickMsg(time.Now()))
	assert.InDelta(t, 0.5, m.t, 1e-9)
	assert.Len(t, m.pv, 5)
	assert.Greater(t, m.x[0], 20.0)
	assert.Contains(t, m.View(), "RUNNING")
}

func TestLivePauseAndTune(t *testing.T) {
	m, err := NewModel(heaterFactory, 1)
	require.NoError(t, err)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg(time.Now()))
	assert.Equal(t, 0.0, m.t)
	assert.Contains(t, m.View(), "PAUSED")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.InDelta(t, 525.0, m.loop.Controller().Kp, 1e-9)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, key("j"))
	assert.InDelta(t, 9.5, m.loop.Controller().Ki, 1e-9)
}

func TestLiveRestartKeepsTuning(t *testing.T) {
	m, err := NewModel(heaterFactory, 1)
	require.NoError(t, err)

	m = update(t, m, key("k"))
	m = update(t, m, TickMsg(time.Now()))
	require.Greater(t, m.t, 0.0)

	m = update(t, m, key("r"))
	assert.Equal(t, 0.0, m.t)
	assert.Empty(t, m.pv)
	assert.InDelta(t, 525.0, m.loop.Controller().Kp, 1e-9)
}

func TestLiveQuit(t *testing.T) {
	m, err := NewModel(heaterFactory, 1)
	require.NoError(t, err)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
