package metrics

import (
	"github.com/san-kum/epid/internal/control"
	"github.com/san-kum/epid/internal/sim"
)

// Saturation is the fraction of samples where the output sat on a bound.
type Saturation struct {
	name      string
	lo, hi    float64
	saturated int
	samples   int
}

func NewSaturation(lo, hi float64) *Saturation {
	return &Saturation{
		name: "saturation",
		lo:   lo,
		hi:   hi,
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(x sim.State, u sim.Control, t float64) {
	if len(u) <= control.CV {
		return
	}
	s.samples++
	if cv := u[control.CV]; cv >= s.hi || cv <= s.lo {
		s.saturated++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}
