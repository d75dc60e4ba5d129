package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/epid/internal/plant"
)

func TestPowerSpectrumPeak(t *testing.T) {
	const n = 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / n)
	}

	ps := PowerSpectrum(data)
	require.Len(t, ps, n/2)

	peak := 0
	for i, v := range ps {
		if v > ps[peak] {
			peak = i
		}
	}
	assert.Equal(t, 4, peak)
	assert.InDelta(t, n/2, ps[4], 1e-9)
}

func TestPowerSpectrumEmpty(t *testing.T) {
	assert.Nil(t, PowerSpectrum(nil))
}

func TestToneGainHalf(t *testing.T) {
	const n, dt = 100, 0.01
	raw := make([]float64, n)
	half := make([]float64, n)
	for i := range raw {
		raw[i] = math.Sin(2 * math.Pi * 5 * float64(i) * dt)
		half[i] = raw[i] / 2
	}
	assert.InDelta(t, 0.5, ToneGain(raw, half, 5, dt), 1e-9)
	assert.Equal(t, 0.0, ToneGain(raw, half[:10], 5, dt))
	assert.Equal(t, 0.0, ToneGain(raw, half, 1000, dt))
}

func TestExpectedGain(t *testing.T) {
	assert.InDelta(t, 1.0, ExpectedGain(0.1, 0, 0.001), 1e-12)
	assert.Less(t, ExpectedGain(0.1, 250, 0.001), ExpectedGain(0.1, 10, 0.001))
}

func TestBenchFilterAttenuatesNoise(t *testing.T) {
	rep, err := BenchFilter(plant.NoisySine(), 20, 0.001, 1000)
	require.NoError(t, err)
	require.Len(t, rep.Tones, 3)
	require.Len(t, rep.Filtered, 1000)

	signal, hi := rep.Tones[0], rep.Tones[1]
	assert.Equal(t, 10.0, signal.Freq)
	assert.InDelta(t, signal.Expected, signal.Gain, 0.05)
	assert.Greater(t, signal.Gain, 0.8)
	assert.Less(t, hi.Gain, 0.15)
	for _, tone := range rep.Tones[1:] {
		assert.Less(t, tone.Gain, signal.Gain)
	}
}

func TestBenchFilterRejectsShortRun(t *testing.T) {
	_, err := BenchFilter(plant.NoisySine(), 20, 0.001, 1)
	assert.Error(t, err)
}

func TestErrorPortrait(t *testing.T) {
	times := []float64{0, 1, 2}
	pv := []float64{0, 4, 6}
	sp := []float64{10, 10, 10}

	pts := ErrorPortrait(times, pv, sp)
	assert.Equal(t, []Point{{X: 6, Y: -4}, {X: 4, Y: -2}}, pts)

	art := PortraitToASCII(pts, 20, 5)
	assert.Equal(t, 5, strings.Count(art, "\n"))
	assert.Contains(t, art, "•")
}
