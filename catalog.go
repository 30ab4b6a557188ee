package sfxmux

import (
	"github.com/cbegin/sfxmux-go/internal/mux"
	"github.com/cbegin/sfxmux-go/internal/signal"
	"github.com/cbegin/sfxmux-go/internal/synth"
)

// Catalog returns the built-in effect definitions. Every call builds a fresh
// slice; the builders are values and can be modified freely.
func Catalog() []mux.Definition[Effect] {
	note := func(l synth.Letter, octave int) synth.Note {
		return synth.Note{Letter: l, Octave: octave}
	}
	return []mux.Definition[Effect]{
		{
			Effect: EffectStartup,
			Builder: signal.FromOscillator(synth.HarmonicsOsc(note(synth.A, 3), 2, 0.3,
				[]float64{0, 0.1, 0, 0.2}, []float64{0.6})).
				WithEnvelope(synth.ADSR(0.01, 0.5, 0.5, 0.5)).
				WithPan(0.25).
				WithDelayTime(1),
		},
		{
			Effect:  EffectClick,
			Builder: signal.FromOscillator(synth.SquareOsc(note(synth.G, 5), 0.1, 0.1)).WithPan(0.8).WithDelayTime(0.25),
		},
		{
			Effect:  EffectUserOption,
			Builder: signal.FromOscillator(synth.SquareOsc(note(synth.C, 6), 0.1, 0.1)).WithPan(0.6).WithDelayTime(0.25),
		},
		{
			Effect:  EffectFertilised,
			Builder: signal.FromOscillator(synth.SineOsc(note(synth.C, 4), 0.3, 0.1)).WithPan(0.6).WithDelayTime(0.25),
		},
		{
			Effect: EffectNewSpore,
			Builder: signal.FromOscillator(synth.HarmonicsOsc(note(synth.F, 5), 0.3, 0.1,
				[]float64{0, 0.3, 0, 0.1}, []float64{0.6})).
				WithPan(0.3).
				WithDelayTime(0.33),
		},
		{
			Effect:  EffectNewMinion,
			Builder: signal.FromOscillator(synth.SineOsc(note(synth.A, 4), 0.5, 0.1)).WithPan(0.55).WithDelayTime(0.25),
		},
		{
			Effect:  EffectDieMinion,
			Builder: signal.FromOscillator(synth.SineOsc(note(synth.Eb, 3), 1, 0.2)).WithPan(1).WithDelayTime(0.5),
		},
	}
}

// NewMultiplexer renders the built-in catalog at sampleRate with a pool of
// maxVoices voices.
func NewMultiplexer(sampleRate float64, maxVoices int, opts ...mux.Option) *mux.Multiplexer[Effect] {
	return mux.New(sampleRate, maxVoices, Catalog(), opts...)
}
