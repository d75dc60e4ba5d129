package metrics

import (
	"math"

	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/internal/sim"
)

// ControlEffort is the mean absolute controller output.
type ControlEffort struct {
	sum float64
	n   int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x sim.State, u sim.Control, t float64) {
	if len(u) <= control.CV {
		return
	}
	c.sum += math.Abs(u[control.CV])
	c.n++
}

func (c *ControlEffort) Value() float64 {
	if c.n == 0 {
		return 0
	}
	return c.sum / float64(c.n)
}

func (c *ControlEffort) Reset() { *c = ControlEffort{} }

// Travel sums |y[k] - y[k-1]| over the run: how far the actuator moved.
// A deadband shows up here as a lower value at the same tracking error.
type Travel struct {
	prev    float64
	started bool
	total   float64
}

func NewTravel() *Travel { return &Travel{} }

func (m *Travel) Name() string { return "cv_travel" }

func (m *Travel) Observe(x sim.State, u sim.Control, t float64) {
	if len(u) <= control.CV {
		return
	}
	y := u[control.CV]
	if m.started {
		m.total += math.Abs(y - m.prev)
	}
	m.prev = y
	m.started = true
}

func (m *Travel) Value() float64 { return m.total }

func (m *Travel) Reset() { *m = Travel{} }
