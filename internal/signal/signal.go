package signal

import "math"

// Channels is the number of interleaved channels in a Frame.
const Channels = 2

// Frame is one sample instant across all channels, left then right.
type Frame [Channels]float32

// Signal is a rendered, immutable buffer of frames.
type Signal struct {
	sampleRate float64
	frames     []Frame
}

// New renders fn at every sample instant of a sound lasting duration seconds.
// The frame count is round(duration * sampleRate), never negative.
func New(sampleRate, duration float64, fn func(t float64) Frame) Signal {
	n := frameCount(duration, sampleRate)
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = fn(float64(i) / sampleRate)
	}
	return Signal{sampleRate: sampleRate, frames: frames}
}

// FromFrames wraps frames without copying them; the caller must not modify
// them afterwards.
func FromFrames(sampleRate float64, frames []Frame) Signal {
	return Signal{sampleRate: sampleRate, frames: frames}
}

func (s Signal) Len() int {
	return len(s.frames)
}

// At returns frame i.
func (s Signal) At(i int) Frame {
	return s.frames[i]
}

// Frames exposes the underlying frames for reading. Callers must treat the
// slice as read-only; it is shared by every copy of the Signal.
func (s Signal) Frames() []Frame {
	return s.frames
}

func (s Signal) SampleRate() float64 {
	return s.sampleRate
}

// Duration is the length of the signal in seconds.
func (s Signal) Duration() float64 {
	if s.sampleRate <= 0 {
		return 0
	}
	return float64(len(s.frames)) / s.sampleRate
}

func frameCount(seconds, sampleRate float64) int {
	n := math.Round(seconds * sampleRate)
	if !(n > 0) {
		return 0
	}
	return int(n)
}
