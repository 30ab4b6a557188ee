package sfxmux

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	intaudio "github.com/cbegin/sfxmux-go/internal/audio"
	"github.com/cbegin/sfxmux-go/internal/mux"
)

// DefaultMaxVoices is the voice pool size used when WithMaxVoices is not given.
const DefaultMaxVoices = 16

type Backend string

const (
	BackendEbiten Backend = "ebiten"
	BackendOto    Backend = "oto"
)

func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendEbiten, BackendOto:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q (expected ebiten|oto)", ErrUnknownBackend, name)
	}
}

type PlayerOption func(*playerConfig)

type playerConfig struct {
	maxVoices int
	backend   Backend
	queueSize int
	logger    *slog.Logger
	sampleTap func([]float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{
		maxVoices: DefaultMaxVoices,
		backend:   BackendEbiten,
		logger:    slog.New(slog.DiscardHandler),
	}
}

func WithMaxVoices(n int) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.maxVoices = n
	}
}

func WithBackend(b Backend) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.backend = b
	}
}

// WithQueueSize bounds the triggers that can wait for the next audio
// callback. Zero selects four per voice.
func WithQueueSize(n int) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.queueSize = n
	}
}

func WithLogger(logger *slog.Logger) PlayerOption {
	return func(cfg *playerConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSampleTap installs a callback invoked with each generated stereo buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// Player renders the built-in catalog once and plays triggered effects through
// a host audio backend. Trigger is safe to call from any goroutine.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	backend    Backend
	mux        *mux.Multiplexer[Effect]
	source     *mux.Source[Effect]
	audio      intaudio.Backend
	sampleTap  func([]float32)
	log        *slog.Logger
}

// tappedSource forwards every generated buffer to the sample tap.
type tappedSource struct {
	src *mux.Source[Effect]
	tap func([]float32)
}

func (w tappedSource) Process(dst []float32) {
	w.src.Process(dst)
	if w.tap != nil {
		w.tap(dst)
	}
}

// NewPlayer pre-renders every effect at sampleRate. No audio device is opened
// until Start.
func NewPlayer(sampleRate int, opts ...PlayerOption) (*Player, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxVoices <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVoices, cfg.maxVoices)
	}
	if _, err := ParseBackend(string(cfg.backend)); err != nil {
		return nil, err
	}
	m := NewMultiplexer(float64(sampleRate), cfg.maxVoices, mux.WithLogger(cfg.logger))
	cfg.logger.Info("effects rendered",
		slog.Int("sample_rate", sampleRate),
		slog.Int("voices", cfg.maxVoices),
		slog.Int("signals", m.WavetableLen()))
	return &Player{
		sampleRate: sampleRate,
		backend:    cfg.backend,
		mux:        m,
		source:     mux.NewSource(m, cfg.queueSize),
		sampleTap:  cfg.sampleTap,
		log:        cfg.logger,
	}, nil
}

func (p *Player) output() intaudio.SampleSource {
	return tappedSource{src: p.source, tap: p.sampleTap}
}

// Start opens the audio backend and begins pulling samples. Starting a
// running player is a no-op.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		return nil
	}
	var (
		backend intaudio.Backend
		err     error
	)
	switch p.backend {
	case BackendOto:
		backend, err = intaudio.NewOtoPlayer(p.sampleRate, p.output())
	default:
		backend, err = intaudio.NewEbitenPlayer(p.sampleRate, p.output())
	}
	if err != nil {
		return fmt.Errorf("start %s backend: %w", p.backend, err)
	}
	p.audio = backend
	p.audio.Play()
	p.log.Info("audio started", slog.String("backend", string(p.backend)), slog.Int("sample_rate", p.sampleRate))
	return nil
}

// Trigger queues effect for the next audio callback. It reports false when
// the effect is unknown or the queue is full. A queued trigger can still be
// dropped when every voice is busy.
func (p *Player) Trigger(effect Effect) bool {
	if !effect.valid() {
		return false
	}
	return p.source.Trigger(effect)
}

// Play is Trigger with an error describing why nothing was queued.
func (p *Player) Play(effect Effect) error {
	if !effect.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownEffect, int(effect))
	}
	p.mu.Lock()
	started := p.audio != nil
	p.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	if !p.source.Trigger(effect) {
		return ErrQueueFull
	}
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
	}
}

// Stop closes the backend. The player can be started again afterwards.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio == nil {
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	p.log.Info("audio stopped", slog.String("backend", string(p.backend)))
	return err
}

// SetMasterVolume sets runtime volume scalar. 1.0 is default.
func (p *Player) SetMasterVolume(volume float64) {
	p.source.SetGain(volume)
}

func (p *Player) MasterVolume() float64 {
	return p.source.Gain()
}

// ActiveVoices returns the number of voices playing as of the last audio
// callback.
func (p *Player) ActiveVoices() int {
	return p.source.Active()
}

func (p *Player) MaxVoices() int {
	return p.mux.MaxVoices()
}

func (p *Player) SampleRate() int {
	return p.sampleRate
}
