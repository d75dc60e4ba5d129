package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/internal/sim"
)

// IAE integrates |SP - PV| over time.
type IAE struct {
	name    string
	measure int
	dt      float64
	sum     float64
}

func NewIAE(measure int, dt float64) *IAE {
	return &IAE{name: "iae", measure: measure, dt: dt}
}

func (m *IAE) Name() string { return m.name }

func (m *IAE) Observe(x sim.State, u sim.Control, t float64) {
	if len(u) <= control.Setpoint || m.measure >= len(x) {
		return
	}
	m.sum += math.Abs(u[control.Setpoint]-x[m.measure]) * m.dt
}

func (m *IAE) Value() float64 { return m.sum }

func (m *IAE) Reset() { m.sum = 0 }

// Overshoot is the largest excursion past the setpoint, in percent of the
// setpoint step that preceded it. A change of setpoint starts a new step.
type Overshoot struct {
	name    string
	measure int

	started bool
	sp      float64
	start   float64
	peak    float64
	max     float64
}

func NewOvershoot(measure int) *Overshoot {
	return &Overshoot{name: "overshoot_pct", measure: measure}
}

func (m *Overshoot) Name() string { return m.name }

func (m *Overshoot) Observe(x sim.State, u sim.Control, t float64) {
	if len(u) <= control.Setpoint || m.measure >= len(x) {
		return
	}
	pv, sp := x[m.measure], u[control.Setpoint]
	if !m.started || sp != m.sp {
		m.started = true
		m.start = pv
		m.sp = sp
		m.peak = 0
	}

	step := m.sp - m.start
	if step == 0 {
		return
	}
	past := (pv - m.sp) / step * 100
	if past > m.peak {
		m.peak = past
		m.max = math.Max(m.max, past)
	}
}

func (m *Overshoot) Value() float64 { return m.max }

func (m *Overshoot) Reset() {
	m.started = false
	m.sp, m.start, m.peak, m.max = 0, 0, 0, 0
}

// SteadyState is the RMS tracking error over the trailing window samples.
type SteadyState struct {
	name    string
	measure int
	window  int
	errs    []float64
}

func NewSteadyState(measure, window int) *SteadyState {
	if window < 1 {
		window = 1
	}
	return &SteadyState{name: "steady_state_rms", measure: measure, window: window}
}

func (m *SteadyState) Name() string { return m.name }

func (m *SteadyState) Observe(x sim.State, u sim.Control, t float64) {
	if len(u) <= control.Setpoint || m.measure >= len(x) {
		return
	}
	m.errs = append(m.errs, u[control.Setpoint]-x[m.measure])
	if len(m.errs) > m.window {
		m.errs = m.errs[len(m.errs)-m.window:]
	}
}

func (m *SteadyState) Value() float64 {
	if len(m.errs) == 0 {
		return 0
	}
	return floats.Norm(m.errs, 2) / math.Sqrt(float64(len(m.errs)))
}

// Bias is the mean tracking error over the same window.
func (m *SteadyState) Bias() float64 {
	if len(m.errs) == 0 {
		return 0
	}
	return stat.Mean(m.errs, nil)
}

func (m *SteadyState) Reset() { m.errs = m.errs[:0] }
