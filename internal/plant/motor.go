package plant

import (
	"fmt"

	"github.com/san-kum/epid/internal/sim"
)

// Motor is a first-order speed model of a DC motor: the shaft speed follows
// Gain*u[0] with time constant Tau. State is [speed].
type Motor struct {
	Gain float64
	Tau  float64
}

func NewMotor() *Motor {
	return &Motor{
		Gain: 10.0,
		Tau:  0.5,
	}
}

func (m *Motor) StateDim() int {
	return 1
}

func (m *Motor) ControlDim() int {
	return 1
}

func (m *Motor) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	drive := 0.0
	if len(u) > 0 {
		drive = u[0]
	}
	return sim.State{(m.Gain*drive - x[0]) / m.Tau}
}

func (m *Motor) GetParams() map[string]float64 {
	return map[string]float64{
		"gain": m.Gain,
		"tau":  m.Tau,
	}
}

func (m *Motor) SetParam(name string, value float64) error {
	switch name {
	case "gain":
		m.Gain = value
	case "tau":
		if value <= 0 {
			return fmt.Errorf("motor: tau must be positive, got %f", value)
		}
		m.Tau = value
	default:
		return fmt.Errorf("motor: unknown parameter %q", name)
	}
	return nil
}
