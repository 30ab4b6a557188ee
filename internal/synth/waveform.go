package synth

import "math"

const twoPi = math.Pi * 2

// Waveform kinds.
const (
	WaveSine = iota
	WaveTriangle
	WaveSquare
	WaveHarmonics
	WaveSilence
)

// Waveform is a periodic shape sampled by phase. The zero value is a sine.
// Build one with Sine, Triangle, Square, Harmonics or Silence.
type Waveform struct {
	kind  int
	shape float64 // triangle slant or square duty cycle
	hcos  []float64
	hsin  []float64
}

func Sine() Waveform {
	return Waveform{kind: WaveSine}
}

// Triangle rises from -1 to +1 over [0, slant) and falls back to -1 over [slant, 1).
func Triangle(slant float64) Waveform {
	return Waveform{kind: WaveTriangle, shape: slant}
}

// Square is -1 below the duty cycle and +1 from it onwards.
func Square(duty float64) Waveform {
	return Waveform{kind: WaveSquare, shape: duty}
}

// Harmonics sums cosine and sine partials; coefficient i weights harmonic i+1.
// The slices are copied so the waveform never aliases caller memory.
func Harmonics(hcos, hsin []float64) Waveform {
	return Waveform{
		kind: WaveHarmonics,
		hcos: append([]float64(nil), hcos...),
		hsin: append([]float64(nil), hsin...),
	}
}

func Silence() Waveform {
	return Waveform{kind: WaveSilence}
}

// Kind returns one of the Wave* constants.
func (w Waveform) Kind() int {
	return w.kind
}

// Sample returns the amplitude at phase, which must already be reduced to [0, 1).
func (w Waveform) Sample(phase float64) float64 {
	switch w.kind {
	case WaveSine:
		return math.Sin(twoPi * phase)
	case WaveTriangle:
		if phase < w.shape {
			return lerpClip(0, w.shape, -1, 1, phase)
		}
		return lerpClip(w.shape, 1, 1, -1, phase)
	case WaveSquare:
		// phase == duty counts as the high half.
		if phase < w.shape {
			return -1
		}
		return 1
	case WaveHarmonics:
		phi := twoPi * phase
		var sum float64
		for i, c := range w.hcos {
			sum += c * math.Cos(phi*float64(i+1))
		}
		for i, s := range w.hsin {
			sum += s * math.Sin(phi*float64(i+1))
		}
		return sum
	default:
		return 0
	}
}

// lerpClip interpolates from y0 at x0 to y1 at x1, holding the end values
// outside the window. An empty window snaps to whichever side t is on.
func lerpClip(x0, x1, y0, y1, t float64) float64 {
	if x1 == x0 {
		if t < x1 {
			return y0
		}
		return y1
	}
	v := (t - x0) / (x1 - x0)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return y0 + (y1-y0)*v
}
