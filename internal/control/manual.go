package control

import "github.com/san-kum/epid/internal/sim"

// Manual holds a constant output. Used for open-loop step tests.
type Manual struct {
	Output float64
}

func NewManual(output float64) *Manual {
	return &Manual{Output: output}
}

// SetOutput changes the held output.
func (m *Manual) SetOutput(v float64) {
	m.Output = v
}

func (m *Manual) Compute(x sim.State, t float64) sim.Control {
	u := make(sim.Control, Dim)
	u[CV] = m.Output
	return u
}
