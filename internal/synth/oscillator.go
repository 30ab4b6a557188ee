package synth

import "math"

// Tone is a pitch in Hz held for Duration seconds at Amplitude.
type Tone struct {
	Pitch     float64
	Duration  float64
	Amplitude float64
}

// Oscillator plays a Tone through a Waveform.
type Oscillator struct {
	Tone     Tone
	Waveform Waveform
}

func SineOsc(note Note, duration, amplitude float64) Oscillator {
	return Oscillator{
		Tone:     Tone{Pitch: note.Hz(), Duration: duration, Amplitude: amplitude},
		Waveform: Sine(),
	}
}

// SquareOsc is a PWMOsc with a 50% duty cycle.
func SquareOsc(note Note, duration, amplitude float64) Oscillator {
	return PWMOsc(note, duration, amplitude, 0.5)
}

func PWMOsc(note Note, duration, amplitude, duty float64) Oscillator {
	return Oscillator{
		Tone:     Tone{Pitch: note.Hz(), Duration: duration, Amplitude: amplitude},
		Waveform: Square(duty),
	}
}

func TriangleOsc(note Note, duration, amplitude, slant float64) Oscillator {
	return Oscillator{
		Tone:     Tone{Pitch: note.Hz(), Duration: duration, Amplitude: amplitude},
		Waveform: Triangle(slant),
	}
}

func HarmonicsOsc(note Note, duration, amplitude float64, hcos, hsin []float64) Oscillator {
	return Oscillator{
		Tone:     Tone{Pitch: note.Hz(), Duration: duration, Amplitude: amplitude},
		Waveform: Harmonics(hcos, hsin),
	}
}

// SilenceOsc lasts one second and produces nothing.
func SilenceOsc() Oscillator {
	return Oscillator{
		Tone:     Tone{Pitch: 1, Duration: 1, Amplitude: 1},
		Waveform: Silence(),
	}
}

// Sample returns the raw oscillator output at t seconds.
func (o Oscillator) Sample(t float64) float64 {
	_, phase := math.Modf(t * o.Tone.Pitch)
	if phase < 0 {
		phase++
	}
	return o.Tone.Amplitude * o.Waveform.Sample(phase)
}

// Duration is the tone length in seconds.
func (o Oscillator) Duration() float64 {
	return o.Tone.Duration
}

func (o Oscillator) Pitch() float64 {
	return o.Tone.Pitch
}
