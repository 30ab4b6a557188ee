package sfxmux

import "github.com/cbegin/sfxmux-go/internal/mux"

// RenderSamples triggers effects together at time zero and returns seconds of
// interleaved stereo output, mixed the same way the Player mixes. Effects
// beyond DefaultMaxVoices are dropped.
func RenderSamples(effects []Effect, sampleRate int, seconds float64) []float32 {
	if sampleRate <= 0 {
		return nil
	}
	m := NewMultiplexer(float64(sampleRate), DefaultMaxVoices)
	src := mux.NewSource(m, max(len(effects), 1))
	for _, e := range effects {
		if e.valid() {
			src.Trigger(e)
		}
	}
	frames := max(int(float64(sampleRate)*seconds), 0)
	out := make([]float32, frames*2)
	src.Process(out)
	return out
}
