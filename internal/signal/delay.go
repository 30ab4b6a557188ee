package signal

import "github.com/cbegin/sfxmux-go/internal/effects"

// Delay configures the ping-pong echo applied after rendering.
type Delay struct {
	Time     float64 // seconds between repeats
	Tail     float64 // seconds appended after the source for the echoes to ring out
	WetDry   float32
	Feedback float32
}

func DefaultDelay() Delay {
	return Delay{
		Time:     0.25,
		Tail:     1.0,
		WetDry:   1,
		Feedback: 0.5,
	}
}

// WithDelay returns a new signal of Len()+round(d.Tail*sampleRate) frames with
// the ping-pong echo applied. The receiver is left untouched.
func (s Signal) WithDelay(d Delay) Signal {
	tail := frameCount(d.Tail, s.sampleRate)
	pp := effects.NewPingPong(frameCount(d.Time, s.sampleRate), d.WetDry, d.Feedback)
	return s.apply(pp, tail)
}

// apply streams the signal followed by tail frames of silence through e.
func (s Signal) apply(e effects.Effector, tail int) Signal {
	out := make([]Frame, len(s.frames)+tail)
	for i := range out {
		var src Frame
		if i < len(s.frames) {
			src = s.frames[i]
		}
		l, r := e.Process(src[0], src[1])
		out[i] = Frame{l, r}
	}
	return Signal{sampleRate: s.sampleRate, frames: out}
}
