package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/internal/experiment"
	"github.com/san-kum/epid/internal/sim"
)

const historyCapacity = 300

var paramKeys = []string{"kp", "ki", "kd", "setpoint"}

// Factory builds a fresh experiment; it is called again on restart.
type Factory func() (*experiment.Experiment, error)

type TickMsg time.Time

type Model struct {
	build Factory
	exp   *experiment.Experiment
	loop  *control.Loop
	dist  *sim.DisturbanceQueue

	x     sim.State
	t, dt float64
	speed int

	pv, sp, cv []float64

	running  bool
	selected int
	tuned    map[string]float64
	err      error
}

// NewModel builds the first experiment. speed is the number of samples
// stepped per tick; the tick period is speed sample periods.
func NewModel(build Factory, speed int) (Model, error) {
	if speed < 1 {
		speed = 1
	}
	m := Model{
		build:   build,
		speed:   speed,
		running: true,
		tuned:   map[string]float64{},
	}
	if err := m.restart(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) restart() error {
	exp, err := m.build()
	if err != nil {
		return err
	}
	loop := exp.Loop()
	for _, k := range paramKeys {
		if v, ok := m.tuned[k]; ok {
			if err := loop.SetParam(k, v); err != nil {
				return err
			}
		}
	}

	cfg := exp.Config()
	m.exp = exp
	m.loop = loop
	m.dist = sim.NewDisturbanceQueue(cfg.Disturbances)
	m.x = exp.InitialState()
	m.t = 0
	m.dt = cfg.SamplePeriod
	m.pv = make([]float64, 0, historyCapacity)
	m.sp = make([]float64, 0, historyCapacity)
	m.cv = make([]float64, 0, historyCapacity)
	m.err = nil
	return nil
}

func (m Model) tick() tea.Cmd {
	period := time.Duration(m.dt * float64(m.speed) * float64(time.Second))
	if period < time.Second/60 {
		period = time.Second / 60
	}
	return tea.Tick(period, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.restart(); err != nil {
				m.err = err
			}
		case "tab":
			m.selected = (m.selected + 1) % len(paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.speed; i++ {
				m.step()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.dist.Apply(m.x, m.t, m.dt)

	next, u := m.exp.GetSimulator().Step(m.x, m.t, m.dt)
	if !next.IsValid() {
		m.err = fmt.Errorf("invalid state at t=%.2f", m.t)
		m.running = false
		return
	}
	m.x = next
	m.t += m.dt

	m.pv = push(m.pv, m.x[0])
	m.sp = push(m.sp, u[control.Setpoint])
	m.cv = push(m.cv, u[control.CV])
}

func push(buf []float64, v float64) []float64 {
	if len(buf) >= historyCapacity {
		buf = buf[1:]
	}
	return append(buf, v)
}

func (m *Model) adjustParam(factor float64) {
	key := paramKeys[m.selected]
	v := m.loop.GetParams()[key] * factor
	if err := m.loop.SetParam(key, v); err != nil {
		m.err = err
		return
	}
	m.tuned[key] = v
}

func (m Model) View() string {
	var s strings.Builder
	cfg := m.exp.Config()
	s.WriteString(headerStyle.Render(strings.ToUpper(fmt.Sprintf("%s · %s", cfg.Plant, cfg.Mode))) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(statusError.Render("ERROR: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.pv) > 1 {
		s.WriteString(asciigraph.PlotMany([][]float64{m.sp, m.pv},
			asciigraph.Height(10), asciigraph.Width(60),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
			asciigraph.Caption("PV (red) vs SP (green)")) + "\n\n")
		s.WriteString(asciigraph.Plot(m.cv,
			asciigraph.Height(5), asciigraph.Width(60),
			asciigraph.Caption("CV")) + "\n\n")
	}

	c := m.loop.Controller()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.2fs", m.t))
	row("pv", fmt.Sprintf("%.3f", m.x[0]))
	row("sp", fmt.Sprintf("%.3f", m.loop.Setpoint()))
	row("cv", fmt.Sprintf("%.3f", c.YOut))
	row("p/i/d", fmt.Sprintf("%.3f / %.3f / %.3f", c.PTerm, c.ITerm, c.DTerm))
	row("nan", fmt.Sprintf("%d", m.loop.NaNs()))

	s.WriteString("\nTUNING\n")
	params := m.loop.GetParams()
	for i, k := range paramKeys {
		line := fmt.Sprintf("%-9s %.4g", k, params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	s.WriteString(helpStyle.Render("space:pause r:restart tab:select ↑↓:±5% q:quit"))

	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(s.String()))
}

// Run starts the live view and blocks until it is closed.
func Run(build Factory, speed int) error {
	m, err := NewModel(build, speed)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
