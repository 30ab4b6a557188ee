package signal

import "github.com/cbegin/sfxmux-go/internal/synth"

const defaultSampleRate = 48000

// Builder describes how to render one sound. It is a value: every With method
// returns a modified copy and leaves the receiver as it was, so presets can be
// shared and extended freely.
type Builder struct {
	oscillator synth.Oscillator
	envelope   synth.Envelope
	pan        float64
	sampleRate float64
	delay      Delay
}

// NewBuilder starts from a one second C4 sine at full amplitude, centred,
// with no envelope shaping and the default delay.
func NewBuilder() Builder {
	return Builder{
		oscillator: synth.SineOsc(synth.Note{Letter: synth.C, Octave: 4}, 1, 1),
		envelope:   synth.DefaultEnvelope(),
		pan:        0.5,
		sampleRate: defaultSampleRate,
		delay:      DefaultDelay(),
	}
}

// FromOscillator builds a one-shot: the gain ramps down over the tone and
// echoes once per tone length for four tone lengths.
func FromOscillator(osc synth.Oscillator) Builder {
	duration := osc.Duration()
	delay := DefaultDelay()
	delay.Time = duration
	delay.Tail = duration * 4
	return Builder{
		oscillator: osc,
		envelope:   synth.RampDown(duration),
		pan:        0.5,
		sampleRate: defaultSampleRate,
		delay:      delay,
	}
}

func (b Builder) WithEnvelope(env synth.Envelope) Builder {
	b.envelope = env
	return b
}

// WithEnvelopeRampDown replaces the envelope with a ramp down over the
// current oscillator's duration.
func (b Builder) WithEnvelopeRampDown() Builder {
	return b.WithEnvelope(synth.RampDown(b.oscillator.Duration()))
}

func (b Builder) WithOscillator(osc synth.Oscillator) Builder {
	b.oscillator = osc
	return b
}

// WithPan sets the stereo position: 0 is hard left, 1 hard right.
func (b Builder) WithPan(pan float64) Builder {
	b.pan = pan
	return b
}

func (b Builder) WithSampleRate(sampleRate float64) Builder {
	b.sampleRate = sampleRate
	return b
}

func (b Builder) WithDelay(d Delay) Builder {
	b.delay = d
	return b
}

// WithDelayTime changes the echo spacing and lets it ring for eight repeats.
func (b Builder) WithDelayTime(seconds float64) Builder {
	d := b.delay
	d.Time = seconds
	d.Tail = seconds * 8
	return b.WithDelay(d)
}

func (b Builder) Oscillator() synth.Oscillator { return b.oscillator }
func (b Builder) Envelope() synth.Envelope     { return b.envelope }
func (b Builder) Pan() float64                 { return b.pan }
func (b Builder) SampleRate() float64          { return b.sampleRate }
func (b Builder) Delay() Delay                 { return b.delay }

// Dry renders the enveloped, panned oscillator without the delay.
func (b Builder) Dry() Signal {
	osc := b.oscillator
	env := b.envelope
	duration := osc.Duration()
	weights := [Channels]float64{1 - b.pan, b.pan}
	return New(b.sampleRate, duration, func(t float64) Frame {
		v := osc.Sample(t) * env.Gain(duration, t)
		var f Frame
		for c := range f {
			f[c] = float32(v * weights[c])
		}
		return f
	})
}

// Build renders the sound with its delay applied.
func (b Builder) Build() Signal {
	return b.Dry().WithDelay(b.delay)
}
