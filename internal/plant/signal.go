package plant

import "math"

// Tone is one sine component of a test signal.
type Tone struct {
	Amplitude float64
	Freq      float64 // Hz
}

// Signal is a clean tone plus additive noise tones, sampled on demand.
type Signal struct {
	Clean Tone
	Noise []Tone
}

// NoisySine is the filter bench signal: a 1.0 amplitude 10 Hz tone with
// 0.2 amplitude interference at 250 Hz and 125 Hz.
func NoisySine() Signal {
	return Signal{
		Clean: Tone{Amplitude: 1.0, Freq: 10},
		Noise: []Tone{
			{Amplitude: 0.2, Freq: 250},
			{Amplitude: 0.2, Freq: 125},
		},
	}
}

func (t Tone) At(time float64) float64 {
	return t.Amplitude * math.Sin(2*math.Pi*t.Freq*time)
}

// Sample returns n samples of the clean and the noisy signal, dt apart.
func (s Signal) Sample(n int, dt float64) (clean, noisy []float64) {
	clean = make([]float64, n)
	noisy = make([]float64, n)
	for i := 0; i < n; i++ {
		t := dt * float64(i)
		clean[i] = s.Clean.At(t)
		noisy[i] = clean[i]
		for _, tone := range s.Noise {
			noisy[i] += tone.At(t)
		}
	}
	return clean, noisy
}
