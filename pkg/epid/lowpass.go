package epid

import "math"

// LowPass is a single-pole IIR filter (exponential moving average):
//
//	y[k] = y[k-1] + a * (x[k] - y[k-1])
type LowPass struct {
	Alpha float64 // smoothing factor, 0 < a < 1
	Y     float64

	FiniteChecks bool
}

// NewLowPass returns an uninitialized filter.
func NewLowPass(finiteChecks bool) *LowPass {
	return &LowPass{FiniteChecks: finiteChecks}
}

// SmoothingFactor derives a from a cutoff frequency in Hz and a sample
// period in seconds: a = (2*pi*dt*fc) / (2*pi*dt*fc + 1).
func SmoothingFactor(cutoffHz, samplePeriod float64) float64 {
	w := 2 * math.Pi * samplePeriod * cutoffHz
	return w / (w + 1)
}

// Init validates alpha and seeds the output with alpha*x0, not x0.
func (f *LowPass) Init(alpha, x0 float64) error {
	if f == nil {
		return &ParamError{Param: "ctx", Err: ErrInit}
	}
	if alpha <= 0 || alpha >= 1 {
		return &ParamError{Param: "smoothing_factor", Value: alpha, Err: ErrInit}
	}
	if f.FiniteChecks {
		if err := checkFinite([]string{"smoothing_factor", "x_0"}, alpha, x0); err != nil {
			return err
		}
	}

	f.Alpha = alpha
	f.Y = alpha * x0
	return nil
}

// Update feeds one sample and returns the filtered value.
func (f *LowPass) Update(input float64) float64 {
	f.Y += f.Alpha * (input - f.Y)
	return f.Y
}
