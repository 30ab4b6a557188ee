package mux

import (
	"context"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/cbegin/sfxmux-go/internal/signal"
)

// Definition binds an effect key to the builder that renders it.
type Definition[K comparable] struct {
	Effect  K
	Builder signal.Builder
}

type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for construction and trigger records.
// Records are emitted at Debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Multiplexer owns the pre-rendered wavetable and a fixed pool of voices, and
// mixes the playing voices into output buffers.
//
// A Multiplexer is not safe for concurrent use. When triggers come from a
// different goroutine than the audio callback, put a Source in front of it.
type Multiplexer[K comparable] struct {
	sampleRate float64
	wavetable  []signal.Signal
	effects    map[K]int
	voices     []Voice
	playing    *bitset.BitSet
	terminated *bitset.BitSet
	available  []int // LIFO free list
	log        *slog.Logger
}

// New renders every definition at sampleRate and prepares maxVoices voices.
// It does all the synthesis up front and is not real-time safe.
func New[K comparable](sampleRate float64, maxVoices int, catalog []Definition[K], opts ...Option) *Multiplexer[K] {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if maxVoices < 0 {
		maxVoices = 0
	}
	m := &Multiplexer[K]{
		sampleRate: sampleRate,
		wavetable:  make([]signal.Signal, 0, len(catalog)),
		effects:    make(map[K]int, len(catalog)),
		voices:     make([]Voice, maxVoices),
		playing:    bitset.New(uint(maxVoices)),
		terminated: bitset.New(uint(maxVoices)),
		available:  make([]int, 0, maxVoices),
		log:        cfg.logger,
	}
	for _, def := range catalog {
		idx := m.record(def.Builder.WithSampleRate(sampleRate))
		m.effects[def.Effect] = idx
		m.log.Debug("assigned effect", slog.Any("effect", def.Effect), slog.Int("signal", idx))
	}
	for i := maxVoices - 1; i >= 0; i-- {
		m.voices[i].signal = noSignal
		m.available = append(m.available, i)
	}
	return m
}

func (m *Multiplexer[K]) record(b signal.Builder) int {
	s := b.Build()
	idx := len(m.wavetable)
	m.wavetable = append(m.wavetable, s)
	m.log.Debug("built signal", slog.Int("signal", idx), slog.Int("frames", s.Len()))
	return idx
}

// Trigger starts effect on a free voice. It returns false, and changes
// nothing, when the effect is unknown or every voice is busy.
func (m *Multiplexer[K]) Trigger(effect K) bool {
	idx, ok := m.effects[effect]
	if !ok {
		return false
	}
	slot, ok := m.allocate(newVoice(idx, m.wavetable[idx].Len()))
	debug := m.log.Enabled(context.Background(), slog.LevelDebug)
	if !ok {
		if debug {
			m.log.Debug("voice dropped", slog.Any("effect", effect))
		}
		return false
	}
	if debug {
		m.log.Debug("voice playing", slog.Int("voice", slot), slog.Any("effect", effect))
	}
	return true
}

func (m *Multiplexer[K]) allocate(v Voice) (int, bool) {
	n := len(m.available)
	if n == 0 {
		return 0, false
	}
	slot := m.available[n-1]
	m.available = m.available[:n-1]
	m.voices[slot] = v
	m.playing.Set(uint(slot))
	return slot, true
}

func (m *Multiplexer[K]) free(slot int) {
	m.voices[slot].signal = noSignal
	m.playing.Clear(uint(slot))
	m.available = append(m.available, slot)
}

// AudioRequested overwrites buf with the sum of every playing voice, starting
// at the first frame, and frees voices that reach their end. Output is not
// clipped. It does not allocate.
func (m *Multiplexer[K]) AudioRequested(buf []signal.Frame) {
	clear(buf)
	m.terminated.ClearAll()
	for i, ok := m.playing.NextSet(0); ok; i, ok = m.playing.NextSet(i + 1) {
		v := &m.voices[i]
		if v.signal == noSignal {
			m.terminated.Set(i)
			continue
		}
		frames := m.wavetable[v.signal].Frames()[v.position:]
		n := min(len(buf), v.remaining())
		for k := 0; k < n; k++ {
			for c := range buf[k] {
				buf[k][c] += frames[k][c]
			}
		}
		if v.advance(n) {
			m.terminated.Set(i)
		}
	}
	for i, ok := m.terminated.NextSet(0); ok; i, ok = m.terminated.NextSet(i + 1) {
		m.free(int(i))
	}
}

// Playing returns the number of voices currently playing.
func (m *Multiplexer[K]) Playing() int {
	return int(m.playing.Count())
}

// IsPlaying reports whether voice slot is in use.
func (m *Multiplexer[K]) IsPlaying(slot int) bool {
	if slot < 0 || slot >= len(m.voices) {
		return false
	}
	return m.playing.Test(uint(slot))
}

// Voice returns a copy of the voice in slot.
func (m *Multiplexer[K]) Voice(slot int) Voice {
	return m.voices[slot]
}

// Available returns the number of free voices.
func (m *Multiplexer[K]) Available() int {
	return len(m.available)
}

func (m *Multiplexer[K]) MaxVoices() int {
	return len(m.voices)
}

func (m *Multiplexer[K]) SampleRate() float64 {
	return m.sampleRate
}

// Signal returns the rendered signal for effect.
func (m *Multiplexer[K]) Signal(effect K) (signal.Signal, bool) {
	idx, ok := m.effects[effect]
	if !ok {
		return signal.Signal{}, false
	}
	return m.wavetable[idx], true
}

// WavetableLen returns the number of rendered signals.
func (m *Multiplexer[K]) WavetableLen() int {
	return len(m.wavetable)
}
