package integrators

import "github.com/san-kum/epid/internal/sim"

// Euler advances x by dt*f(x, u). With dt equal to the sample period this is
// the plant update a fixed-rate control task usually runs next to the loop.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

// Step writes into the derivative slice returned by the plant, which must
// be freshly allocated for each call.
func (Euler) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	next := dyn.Derivative(x, u, t)
	for i, xi := range x {
		next[i] = xi + dt*next[i]
	}
	return next
}
