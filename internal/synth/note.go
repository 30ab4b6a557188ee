package synth

import "math"

// Letter is a pitch class, C through B.
type Letter int

const (
	C Letter = iota
	Db
	D
	Eb
	E
	F
	Gb
	G
	Ab
	A
	Bb
	B
)

// Sharp spellings of the black keys.
const (
	Cs = Db
	Ds = Eb
	Fs = Gb
	Gs = Ab
	As = Bb
)

// Note is a letter in an octave; A4 is 440 Hz.
type Note struct {
	Letter Letter
	Octave int
}

// MIDI returns the MIDI note number (C4 = 60).
func (n Note) MIDI() int {
	return (n.Octave+1)*12 + int(n.Letter)
}

// Hz returns the equal-tempered frequency of the note.
func (n Note) Hz() float64 {
	return midiToFreq(n.MIDI())
}

func midiToFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}
