// Package analysis inspects recorded loop and filter signals.
//
//   - [PowerSpectrum]: single-sided magnitude spectrum
//   - [ToneGain]: filtered/raw magnitude ratio at one frequency
//   - [BenchFilter]: runs the low-pass filter over a test signal and
//     compares measured tone gains with the analytic response
//   - [ErrorPortrait]: tracking error against its rate, for phase plots
//
// # Filter bench
//
//	rep, err := analysis.BenchFilter(plant.NoisySine(), 20, 0.001, 1000)
//	for _, tone := range rep.Tones {
//	    fmt.Printf("%6.1f Hz  %.3f (expected %.3f)\n", tone.Freq, tone.Gain, tone.Expected)
//	}
package analysis
