package mux

import (
	"math"
	"sync/atomic"

	"github.com/cbegin/sfxmux-go/internal/signal"
)

// Source feeds a Multiplexer from two sides: Trigger may be called from any
// goroutine, Process only from the audio callback. Triggers are handed over
// through a buffered channel and applied at the start of the next Process, so
// the pool itself is only ever touched by the audio goroutine.
type Source[K comparable] struct {
	mux     *Multiplexer[K]
	pending chan K
	frames  []signal.Frame
	gain    atomic.Uint64 // float64 bits
	active  atomic.Int32
}

// NewSource wraps m. queueSize bounds the triggers that can wait between two
// audio callbacks; it defaults to four per voice.
func NewSource[K comparable](m *Multiplexer[K], queueSize int) *Source[K] {
	if queueSize <= 0 {
		queueSize = max(4*m.MaxVoices(), 1)
	}
	s := &Source[K]{
		mux:     m,
		pending: make(chan K, queueSize),
	}
	s.gain.Store(math.Float64bits(1))
	return s
}

// Trigger queues effect for the next audio callback. It never blocks; when
// the queue is full the request is dropped and Trigger returns false.
func (s *Source[K]) Trigger(effect K) bool {
	select {
	case s.pending <- effect:
		return true
	default:
		return false
	}
}

// SetGain sets the output gain applied while interleaving. Negative values
// are treated as zero.
func (s *Source[K]) SetGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	s.gain.Store(math.Float64bits(gain))
}

func (s *Source[K]) Gain() float64 {
	return math.Float64frombits(s.gain.Load())
}

// Active returns the playing voice count as of the last Process call.
func (s *Source[K]) Active() int {
	return int(s.active.Load())
}

// Process fills dst with interleaved stereo samples. A trailing odd sample is
// zeroed.
func (s *Source[K]) Process(dst []float32) {
	s.drain()
	n := len(dst) / signal.Channels
	if cap(s.frames) < n {
		s.frames = make([]signal.Frame, n)
	}
	frames := s.frames[:n]
	s.mux.AudioRequested(frames)
	g := float32(s.Gain())
	for k, f := range frames {
		dst[2*k] = f[0] * g
		dst[2*k+1] = f[1] * g
	}
	for i := n * signal.Channels; i < len(dst); i++ {
		dst[i] = 0
	}
	s.active.Store(int32(s.mux.Playing()))
}

// drain applies at most one queue's worth of triggers so a busy producer
// cannot hold the audio callback.
func (s *Source[K]) drain() {
	for range cap(s.pending) {
		select {
		case effect := <-s.pending:
			s.mux.Trigger(effect)
		default:
			return
		}
	}
}
