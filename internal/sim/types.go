package sim

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Control []float64

type Dynamics interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, u Control, t float64, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

// DisturbanceObserver is notified when a scheduled disturbance is applied.
type DisturbanceObserver interface {
	OnDisturbance(d Disturbance, t float64)
}

// Configurable is implemented by plants and loops with named parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Disturbance adds Delta to state component Index once, at the first sample
// with t >= At.
type Disturbance struct {
	At    float64 `yaml:"at" json:"at"`
	Index int     `yaml:"index" json:"index"`
	Delta float64 `yaml:"delta" json:"delta"`
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
	Disturbances  []Disturbance
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.1,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	States     []State
	Controls   []Control
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
