package mux

// noSignal marks a free voice slot.
const noSignal = -1

// Voice is a playback cursor into one wavetable entry.
type Voice struct {
	signal   int
	length   int
	position int
}

func newVoice(signalIndex, length int) Voice {
	return Voice{signal: signalIndex, length: length}
}

// Signal returns the wavetable index the voice plays, or -1 when the slot is free.
func (v Voice) Signal() int { return v.signal }

func (v Voice) Len() int      { return v.length }
func (v Voice) Position() int { return v.position }

func (v Voice) remaining() int {
	return v.length - v.position
}

// advance moves the cursor n frames and reports whether the end was reached.
func (v *Voice) advance(n int) bool {
	v.position = min(v.length, v.position+n)
	return v.position >= v.length
}
