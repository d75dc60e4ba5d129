package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X[k]| for the first half of the DFT of data.
// Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spec := fft.FFTReal(data)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// Bin is the spectrum index closest to freq for n samples dt apart.
func Bin(freq float64, n int, dt float64) int {
	return int(math.Round(freq * float64(n) * dt))
}

// ToneGain is the ratio of filtered to raw magnitude at freq. It returns 0
// when the raw signal has no energy in that bin or the bin is out of range.
func ToneGain(raw, filtered []float64, freq, dt float64) float64 {
	n := len(raw)
	if n == 0 || len(filtered) != n {
		return 0
	}
	k := Bin(freq, n, dt)
	if k < 0 || k >= n/2 {
		return 0
	}
	r := PowerSpectrum(raw)[k]
	if r == 0 {
		return 0
	}
	return PowerSpectrum(filtered)[k] / r
}
