package mux

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/cbegin/sfxmux-go/internal/signal"
	"github.com/cbegin/sfxmux-go/internal/synth"
)

const testRate = 1000

// dry passes the rendered tone through the delay stage unchanged.
var dry = signal.Delay{Time: 0.01}

func testCatalog() []Definition[string] {
	a4 := synth.Note{Letter: synth.A, Octave: 4}
	return []Definition[string]{
		{Effect: "short", Builder: signal.NewBuilder().WithOscillator(synth.SineOsc(a4, 0.25, 0.5)).WithDelay(dry)},
		{Effect: "long", Builder: signal.NewBuilder().WithOscillator(synth.SquareOsc(a4, 1, 0.25)).WithPan(0.2).WithDelay(dry)},
		{Effect: "empty", Builder: signal.NewBuilder().WithOscillator(synth.SineOsc(a4, 0, 1)).WithDelay(signal.Delay{})},
	}
}

func newTestMux(voices int) *Multiplexer[string] {
	return New(testRate, voices, testCatalog())
}

func TestWavetableRenderedAtMuxRate(t *testing.T) {
	m := newTestMux(2)
	if m.WavetableLen() != 3 {
		t.Fatalf("wavetable len = %d, want 3", m.WavetableLen())
	}
	for _, tc := range []struct {
		effect string
		frames int
	}{
		{"short", 250},
		{"long", 1000},
		{"empty", 0},
	} {
		s, ok := m.Signal(tc.effect)
		if !ok {
			t.Fatalf("%s not mapped", tc.effect)
		}
		if s.Len() != tc.frames || s.SampleRate() != testRate {
			t.Errorf("%s: len %d at %v Hz, want %d at %d Hz", tc.effect, s.Len(), s.SampleRate(), tc.frames, testRate)
		}
	}
	if _, ok := m.Signal("missing"); ok {
		t.Error("missing effect should not be mapped")
	}
}

func TestPoolCapacity(t *testing.T) {
	const voices = 4
	m := newTestMux(voices)
	for i := 0; i < voices; i++ {
		if !m.Trigger("long") {
			t.Fatalf("trigger %d rejected", i)
		}
	}
	if m.Playing() != voices || m.Available() != 0 {
		t.Fatalf("playing = %d, available = %d", m.Playing(), m.Available())
	}
	if m.Trigger("long") {
		t.Error("trigger beyond capacity should be dropped")
	}
	if m.Playing() != voices {
		t.Errorf("playing = %d after overflow, want %d", m.Playing(), voices)
	}
	for slot := 0; slot < voices; slot++ {
		if !m.IsPlaying(slot) || m.Voice(slot).Position() != 0 {
			t.Errorf("slot %d: playing=%v voice=%+v", slot, m.IsPlaying(slot), m.Voice(slot))
		}
	}
}

func TestUnmappedEffectIgnored(t *testing.T) {
	m := newTestMux(2)
	if m.Trigger("nope") {
		t.Error("unmapped effect should not trigger")
	}
	if m.Playing() != 0 || m.Available() != 2 {
		t.Errorf("playing = %d, available = %d", m.Playing(), m.Available())
	}
}

func TestSlotsAllocatedLowestFirst(t *testing.T) {
	m := newTestMux(3)
	m.Trigger("short")
	if !m.IsPlaying(0) || m.IsPlaying(1) {
		t.Errorf("first trigger should take slot 0")
	}
	m.Trigger("long")
	if !m.IsPlaying(1) {
		t.Errorf("second trigger should take slot 1")
	}
	if m.IsPlaying(-1) || m.IsPlaying(3) {
		t.Error("out of range slots reported playing")
	}
}

func TestAdditiveMixing(t *testing.T) {
	m := newTestMux(4)
	m.Trigger("short")
	m.Trigger("long")
	m.Trigger("long")

	buf := make([]signal.Frame, 400)
	for i := range buf {
		buf[i] = signal.Frame{9, 9} // must be overwritten
	}
	m.AudioRequested(buf)

	short, _ := m.Signal("short")
	long, _ := m.Signal("long")
	for k := range buf {
		var want signal.Frame
		if k < short.Len() {
			want[0] += short.At(k)[0]
			want[1] += short.At(k)[1]
		}
		for range 2 {
			want[0] += long.At(k)[0]
			want[1] += long.At(k)[1]
		}
		for c := range want {
			if math.Abs(float64(buf[k][c]-want[c])) > 1e-6 {
				t.Fatalf("frame %d = %v, want %v", k, buf[k], want)
			}
		}
	}
	// The short voice ran out inside this pull.
	if m.Playing() != 2 || m.IsPlaying(0) {
		t.Errorf("playing = %d, slot 0 playing = %v", m.Playing(), m.IsPlaying(0))
	}
}

func TestTerminationAndReuse(t *testing.T) {
	m := newTestMux(1)
	m.Trigger("short") // 250 frames
	buf := make([]signal.Frame, 100)

	m.AudioRequested(buf)
	m.AudioRequested(buf)
	if !m.IsPlaying(0) || m.Voice(0).Position() != 200 {
		t.Fatalf("after 200 frames: playing=%v voice=%+v", m.IsPlaying(0), m.Voice(0))
	}
	if m.Trigger("short") {
		t.Fatal("pool of one should be full")
	}

	m.AudioRequested(buf)
	if m.IsPlaying(0) || m.Available() != 1 {
		t.Fatalf("voice should be freed when its 250 frames are consumed")
	}
	if m.Voice(0).Signal() != -1 {
		t.Errorf("freed voice still references signal %d", m.Voice(0).Signal())
	}
	short, _ := m.Signal("short")
	for k := 0; k < 100; k++ {
		want := signal.Frame{}
		if k < 50 {
			want = short.At(200 + k)
		}
		if buf[k] != want {
			t.Fatalf("frame %d = %v, want %v", k, buf[k], want)
		}
	}

	if !m.Trigger("long") {
		t.Fatal("freed slot should be reusable")
	}
	if v := m.Voice(0); v.Position() != 0 || v.Len() != 1000 {
		t.Errorf("reused voice = %+v", v)
	}
}

func TestExactLengthTerminatesOnSamePull(t *testing.T) {
	m := newTestMux(1)
	m.Trigger("short")
	m.AudioRequested(make([]signal.Frame, 250))
	if m.Playing() != 0 {
		t.Errorf("voice consumed exactly should be freed on that pull")
	}
}

func TestZeroLengthSignalTerminatesSilently(t *testing.T) {
	m := newTestMux(2)
	if !m.Trigger("empty") {
		t.Fatal("empty effect should still take a voice")
	}
	buf := make([]signal.Frame, 16)
	m.AudioRequested(buf)
	for k, f := range buf {
		if f != (signal.Frame{}) {
			t.Fatalf("frame %d = %v, want silence", k, f)
		}
	}
	if m.Playing() != 0 || m.Available() != 2 {
		t.Errorf("playing = %d, available = %d", m.Playing(), m.Available())
	}
}

func TestEmptyBufferKeepsVoicesPlaying(t *testing.T) {
	m := newTestMux(1)
	m.Trigger("short")
	m.AudioRequested(nil)
	if !m.IsPlaying(0) || m.Voice(0).Position() != 0 {
		t.Errorf("empty pull changed voice: %+v", m.Voice(0))
	}
}

func TestNegativeVoicesDropsEverything(t *testing.T) {
	m := newTestMux(-3)
	if m.MaxVoices() != 0 || m.Trigger("short") {
		t.Errorf("max voices = %d", m.MaxVoices())
	}
	m.AudioRequested(make([]signal.Frame, 8))
}

func TestDuplicateDefinitionRemaps(t *testing.T) {
	cat := testCatalog()
	cat = append(cat, Definition[string]{Effect: "short", Builder: cat[1].Builder})
	m := New(testRate, 1, cat)
	if m.WavetableLen() != 4 {
		t.Errorf("wavetable len = %d, want 4", m.WavetableLen())
	}
	if s, _ := m.Signal("short"); s.Len() != 1000 {
		t.Errorf("short remapped to %d frames, want 1000", s.Len())
	}
}

func TestPoolInvariantHolds(t *testing.T) {
	const voices = 5
	m := newTestMux(voices)
	buf := make([]signal.Frame, 70)
	effects := []string{"short", "long", "empty", "nope"}
	for step := 0; step < 200; step++ {
		m.Trigger(effects[step%len(effects)])
		if step%3 == 0 {
			m.AudioRequested(buf)
		}
		seen := make(map[int]bool)
		for _, slot := range m.available {
			if seen[slot] || m.IsPlaying(slot) {
				t.Fatalf("step %d: slot %d both free and playing or duplicated", step, slot)
			}
			seen[slot] = true
		}
		if m.Playing()+m.Available() != voices {
			t.Fatalf("step %d: playing %d + available %d != %d", step, m.Playing(), m.Available(), voices)
		}
		for slot := 0; slot < voices; slot++ {
			if v := m.Voice(slot); m.IsPlaying(slot) && v.Position() > v.Len() {
				t.Fatalf("step %d: slot %d past its end: %+v", step, slot, v)
			}
		}
	}
}

func TestAudioRequestedDoesNotAllocate(t *testing.T) {
	m := newTestMux(8)
	buf := make([]signal.Frame, 64)
	allocs := testing.AllocsPerRun(200, func() {
		m.Trigger("short")
		m.Trigger("long")
		m.AudioRequested(buf)
	})
	if allocs != 0 {
		t.Errorf("allocs per pull = %v, want 0", allocs)
	}
}

func TestEndToEndOneSecondSine(t *testing.T) {
	const rate = 48000
	osc := synth.SineOsc(synth.Note{Letter: synth.A, Octave: 4}, 1, 0.1)
	b := signal.NewBuilder().WithOscillator(osc).WithPan(0.5).WithDelay(signal.Delay{Time: 0.25})
	m := New(rate, 4, []Definition[string]{{Effect: "A", Builder: b}})

	m.Trigger("A")
	buf := make([]signal.Frame, rate)
	m.AudioRequested(buf)
	for k := range buf {
		tt := float64(k) / rate
		v := 0.1 * math.Sin(2*math.Pi*math.Mod(440*tt, 1)) * 0.5
		for c := range buf[k] {
			if math.Abs(float64(buf[k][c])-v) > 1e-6 {
				t.Fatalf("frame %d channel %d = %f, want %f", k, c, buf[k][c], v)
			}
		}
	}
	if m.Playing() != 0 {
		t.Errorf("playing = %d after consuming the whole signal", m.Playing())
	}
}

func TestDebugLogging(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := New(testRate, 1, testCatalog(), WithLogger(logger))
	m.Trigger("short")
	m.Trigger("short")
	for _, want := range []string{"built signal", "assigned effect", "voice playing", "voice dropped"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("log missing %q:\n%s", want, out.String())
		}
	}
}
