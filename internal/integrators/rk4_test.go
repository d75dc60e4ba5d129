package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/epid/internal/sim"
)

// firstOrder is dx/dt = (u - x) / tau.
type firstOrder struct{ tau float64 }

func (f *firstOrder) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	return sim.State{(u[0] - x[0]) / f.tau}
}

func (f *firstOrder) StateDim() int   { return 1 }
func (f *firstOrder) ControlDim() int { return 1 }

func stepResponse(integ sim.Integrator, dt float64, steps int) float64 {
	dyn := &firstOrder{tau: 1.0}
	x := sim.State{0}
	u := sim.Control{1}
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
	}
	return x[0]
}

func TestRK4Accuracy(t *testing.T) {
	got := stepResponse(NewRK4(), 0.01, 100)
	expected := 1 - math.Exp(-1.0)

	if math.Abs(got-expected) > 1e-8 {
		t.Errorf("step response error too large: got %.10f, expected %.10f", got, expected)
	}
}

func TestEulerAccuracy(t *testing.T) {
	got := stepResponse(NewEuler(), 0.01, 100)
	expected := 1 - math.Exp(-1.0)

	if math.Abs(got-expected) > 5e-3 {
		t.Errorf("step response error too large: got %.6f, expected %.6f", got, expected)
	}
}

func TestEulerSingleStep(t *testing.T) {
	dyn := &firstOrder{tau: 2.0}
	x := NewEuler().Step(dyn, sim.State{1}, sim.Control{5}, 0, 0.5)

	// 1 + 0.5 * (5 - 1) / 2
	if x[0] != 2.0 {
		t.Errorf("expected 2.0, got %f", x[0])
	}
}
