package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cbegin/sfxmux-go"
)

const (
	windowW = 720
	windowH = 360

	padH     = 72
	padGap   = 8
	margin   = 16
	scopeLen = 4096
)

var (
	bgColor      = color.RGBA{192, 192, 192, 255}
	padColor     = color.RGBA{160, 160, 176, 255}
	padLitColor  = color.RGBA{0, 0, 128, 255}
	bevelLight   = color.RGBA{255, 255, 255, 255}
	bevelDarker  = color.RGBA{64, 64, 64, 255}
	scopeBgColor = color.RGBA{24, 24, 32, 255}
	waveColor    = color.RGBA{80, 200, 255, 220}
)

// scope keeps the most recent mono output for display.
type scope struct {
	mu       sync.Mutex
	ring     []float32
	writePos int
}

func newScope() *scope {
	return &scope{ring: make([]float32, scopeLen)}
}

// Tap is called from the audio thread. Keep it minimal: just copy into ring.
func (s *scope) Tap(samples []float32) {
	s.mu.Lock()
	for i := 0; i+1 < len(samples); i += 2 {
		s.ring[s.writePos] = (samples[i] + samples[i+1]) * 0.5
		s.writePos = (s.writePos + 1) % scopeLen
	}
	s.mu.Unlock()
}

func (s *scope) Snapshot(dst []float32) {
	s.mu.Lock()
	for i := range dst {
		dst[i] = s.ring[(s.writePos+i)%scopeLen]
	}
	s.mu.Unlock()
}

type game struct {
	player  *sfxmux.Player
	scope   *scope
	effects []sfxmux.Effect
	lit     []int // frames left to highlight each pad
	wave    []float32
	volume  float64
	paused  bool
	status  string
}

func newGame(sampleRate, voices int, backend sfxmux.Backend, logger *slog.Logger) (*game, error) {
	sc := newScope()
	pl, err := sfxmux.NewPlayer(sampleRate,
		sfxmux.WithMaxVoices(voices),
		sfxmux.WithBackend(backend),
		sfxmux.WithLogger(logger),
		sfxmux.WithSampleTap(sc.Tap))
	if err != nil {
		return nil, err
	}
	if err := pl.Start(); err != nil {
		return nil, err
	}
	effects := sfxmux.Effects()
	return &game{
		player:  pl,
		scope:   sc,
		effects: effects,
		lit:     make([]int, len(effects)),
		wave:    make([]float32, scopeLen),
		volume:  1,
		status:  "Ready",
	}, nil
}

var padKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for i := range g.effects {
		if i < len(padKeys) && inpututil.IsKeyJustPressed(padKeys[i]) {
			g.trigger(i)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		for i := range g.effects {
			if image.Pt(mx, my).In(g.padRect(i)) {
				g.trigger(i)
			}
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.setVolume(g.volume + 0.1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.setVolume(g.volume - 0.1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	}
	for i := range g.lit {
		if g.lit[i] > 0 {
			g.lit[i]--
		}
	}
	return nil
}

func (g *game) trigger(i int) {
	e := g.effects[i]
	if err := g.player.Play(e); err != nil {
		g.status = err.Error()
		return
	}
	g.lit[i] = 10
	g.status = "Played " + e.String()
}

func (g *game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.player.Pause()
		g.status = "Paused"
		return
	}
	g.player.Resume()
	g.status = "Resumed"
}

func (g *game) setVolume(v float64) {
	g.volume = min(max(v, 0), 2)
	g.player.SetMasterVolume(g.volume)
}

func (g *game) padRect(i int) image.Rectangle {
	n := len(g.effects)
	w := (windowW - 2*margin - (n-1)*padGap) / n
	x := margin + i*(w+padGap)
	return image.Rect(x, margin, x+w, margin+padH)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	for i, e := range g.effects {
		r := g.padRect(i)
		c := padColor
		if g.lit[i] > 0 {
			c = padLitColor
		}
		drawBevel(screen, r, c)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", i+1), r.Min.X+6, r.Min.Y+6)
		ebitenutil.DebugPrintAt(screen, e.String(), r.Min.X+6, r.Max.Y-20)
	}

	sr := image.Rect(margin, margin+padH+padGap, windowW-margin, windowH-margin-24)
	ebitenutil.DrawRect(screen, float64(sr.Min.X), float64(sr.Min.Y), float64(sr.Dx()), float64(sr.Dy()), scopeBgColor)
	g.scope.Snapshot(g.wave)
	drawWaveform(screen, sr, g.wave)

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s | voices %d/%d | volume %.1f (up/down) | space pauses",
			g.status, g.player.ActiveVoices(), g.player.MaxVoices(), g.volume),
		margin, windowH-margin-16)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return windowW, windowH
}

func (g *game) Close() { _ = g.player.Stop() }

func drawBevel(dst *ebiten.Image, r image.Rectangle, fill color.Color) {
	x, y, w, h := float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy())
	ebitenutil.DrawRect(dst, x, y, w, h, fill)
	ebitenutil.DrawRect(dst, x, y, w, 1, bevelLight)
	ebitenutil.DrawRect(dst, x, y, 1, h, bevelLight)
	ebitenutil.DrawRect(dst, x, y+h-1, w, 1, bevelDarker)
	ebitenutil.DrawRect(dst, x+w-1, y, 1, h, bevelDarker)
}

// drawWaveform scales samples to a fixed full-scale of 0.5, the loudest a
// single catalog voice gets.
func drawWaveform(dst *ebiten.Image, r image.Rectangle, samples []float32) {
	if len(samples) < 2 || r.Dx() < 2 {
		return
	}
	midY := float64(r.Min.Y + r.Dy()/2)
	gain := float64(r.Dy()/2-2) / 0.5
	ebitenutil.DrawRect(dst, float64(r.Min.X), midY, float64(r.Dx()), 1, color.RGBA{40, 44, 58, 100})
	prevY := midY - float64(samples[0])*gain
	for px := 1; px < r.Dx(); px++ {
		s := float64(samples[px*len(samples)/r.Dx()])
		y := min(max(midY-s*gain, float64(r.Min.Y)), float64(r.Max.Y-1))
		ebitenutil.DrawLine(dst, float64(r.Min.X+px-1), prevY, float64(r.Min.X+px), y, waveColor)
		prevY = y
	}
}

func main() {
	var (
		sampleRate  = flag.Int("sample-rate", 48000, "output sample rate")
		voices      = flag.Int("voices", sfxmux.DefaultMaxVoices, "voice pool size")
		backendName = flag.String("backend", string(sfxmux.BackendEbiten), "audio backend: ebiten|oto")
		verbose     = flag.Bool("verbose", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	backend, err := sfxmux.ParseBackend(*backendName)
	if err != nil {
		log.Fatal(err)
	}
	g, err := newGame(*sampleRate, *voices, backend, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("sfxpad")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
