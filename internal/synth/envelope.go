package synth

// Envelope is an attack/decay/sustain/release gain shape, in seconds.
// Decay is the time at which the decay ramp ends, measured from the start of
// the sound, not the length of the ramp.
type Envelope struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultEnvelope holds full gain for the whole sound.
func DefaultEnvelope() Envelope {
	return Envelope{Sustain: 1}
}

func ADSR(attack, decay, sustain, release float64) Envelope {
	return Envelope{Attack: attack, Decay: decay, Sustain: sustain, Release: release}
}

// RampDown fades linearly from full gain to silence over duration. Used for
// one-shot percussive effects.
func RampDown(duration float64) Envelope {
	return Envelope{Sustain: 1, Release: duration}
}

// Gain returns the multiplier at time t of a sound lasting duration seconds.
func (e Envelope) Gain(duration, t float64) float64 {
	releaseStart := duration - e.Release
	switch {
	case t < e.Attack:
		return lerpClip(0, e.Attack, 0, 1, t)
	case t < e.Decay:
		return lerpClip(e.Attack, e.Decay, 1, e.Sustain, t)
	case t < releaseStart:
		return e.Sustain
	case t < duration:
		return lerpClip(releaseStart, duration, e.Sustain, 0, t)
	default:
		return 0
	}
}
