package sfxmux

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sfxmux: sample rate must be positive")
	ErrInvalidVoices     = errors.New("sfxmux: voice count must be positive")
	ErrUnknownBackend    = errors.New("sfxmux: unknown audio backend")
	ErrUnknownEffect     = errors.New("sfxmux: unknown effect")
	ErrNotStarted        = errors.New("sfxmux: player not started")
	ErrQueueFull         = errors.New("sfxmux: trigger queue full")
)
