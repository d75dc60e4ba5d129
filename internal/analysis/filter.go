package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/epid/internal/plant"
	"github.com/san-kum/epid/pkg/epid"
)

type ToneResponse struct {
	Freq     float64 `json:"freq"`
	Gain     float64 `json:"gain"`
	Expected float64 `json:"expected"`
}

type FilterReport struct {
	CutoffHz     float64        `json:"cutoff_hz"`
	SamplePeriod float64        `json:"sample_period"`
	Alpha        float64        `json:"alpha"`
	Clean        []float64      `json:"-"`
	Raw          []float64      `json:"-"`
	Filtered     []float64      `json:"-"`
	Tones        []ToneResponse `json:"tones"`
}

// ExpectedGain is the steady-state magnitude response of the single-pole
// filter at freq: |a / (1 - (1-a) e^{-jw})| with w = 2*pi*freq*dt.
func ExpectedGain(alpha, freq, dt float64) float64 {
	w := 2 * math.Pi * freq * dt
	den := 1 - complex(1-alpha, 0)*cmplx.Exp(complex(0, -w))
	return alpha / cmplx.Abs(den)
}

// BenchFilter samples sig n times, runs it through a low-pass filter with
// the given cutoff and reports the gain at each tone of the signal.
func BenchFilter(sig plant.Signal, cutoffHz, dt float64, n int) (*FilterReport, error) {
	if n < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 samples, got %d", n)
	}
	alpha := epid.SmoothingFactor(cutoffHz, dt)

	clean, raw := sig.Sample(n, dt)
	lpf := epid.NewLowPass(true)
	if err := lpf.Init(alpha, raw[0]); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	filtered := make([]float64, n)
	for i, x := range raw {
		filtered[i] = lpf.Update(x)
	}

	rep := &FilterReport{
		CutoffHz:     cutoffHz,
		SamplePeriod: dt,
		Alpha:        alpha,
		Clean:        clean,
		Raw:          raw,
		Filtered:     filtered,
	}
	tones := append([]plant.Tone{sig.Clean}, sig.Noise...)
	for _, tone := range tones {
		rep.Tones = append(rep.Tones, ToneResponse{
			Freq:     tone.Freq,
			Gain:     ToneGain(raw, filtered, tone.Freq, dt),
			Expected: ExpectedGain(alpha, tone.Freq, dt),
		})
	}
	return rep, nil
}
