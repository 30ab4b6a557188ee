package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cbegin/sfxmux-go"
)

var (
	sampleRate  int
	voices      int
	backendName string
	volume      float64
	gap         time.Duration
	repeat      int
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sfxplay",
	Short: "Play and inspect the built-in sound effects",
	Long: `sfxplay renders the built-in effect catalog and plays effects
through the voice multiplexer.

Examples:
  sfxplay list
  sfxplay play click new-spore --gap 150ms
  sfxplay inspect startup`,
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List effects with their rendered length",
	RunE:  runList,
}

var playCmd = &cobra.Command{
	Use:   "play <effect>...",
	Short: "Trigger effects on the audio device",
	Long: `Trigger each named effect in turn, waiting --gap between triggers,
then wait until every voice has finished.

Examples:
  sfxplay play startup
  sfxplay play click click click --gap 50ms --voices 2
  sfxplay play die-minion --backend oto --volume 0.5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [effect]...",
	Short: "Render effects offline and print level and pitch statistics",
	RunE:  runInspect,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&sampleRate, "sample-rate", 48000, "output sample rate")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	playCmd.Flags().IntVar(&voices, "voices", sfxmux.DefaultMaxVoices, "voice pool size")
	playCmd.Flags().StringVar(&backendName, "backend", string(sfxmux.BackendEbiten), "audio backend: ebiten|oto")
	playCmd.Flags().Float64Var(&volume, "volume", 1.0, "master volume scalar")
	playCmd.Flags().DurationVar(&gap, "gap", 250*time.Millisecond, "pause between triggers")
	playCmd.Flags().IntVar(&repeat, "repeat", 1, "play the effect list this many times")

	rootCmd.AddCommand(listCmd, playCmd, inspectCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseEffects(names []string) ([]sfxmux.Effect, error) {
	if len(names) == 0 {
		return sfxmux.Effects(), nil
	}
	out := make([]sfxmux.Effect, 0, len(names))
	for _, name := range names {
		e, err := sfxmux.ParseEffect(name)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func runList(cmd *cobra.Command, args []string) error {
	if sampleRate <= 0 {
		return sfxmux.ErrInvalidSampleRate
	}
	m := sfxmux.NewMultiplexer(float64(sampleRate), 1)
	w := cmd.OutOrStdout()
	for _, e := range sfxmux.Effects() {
		s, _ := m.Signal(e)
		fmt.Fprintf(w, "%-12s %8d frames  %6.2fs\n", e, s.Len(), s.Duration())
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	effects, err := parseEffects(args)
	if err != nil {
		return err
	}
	backend, err := sfxmux.ParseBackend(backendName)
	if err != nil {
		return err
	}
	logger := newLogger()
	pl, err := sfxmux.NewPlayer(sampleRate,
		sfxmux.WithMaxVoices(voices),
		sfxmux.WithBackend(backend),
		sfxmux.WithLogger(logger))
	if err != nil {
		return err
	}
	pl.SetMasterVolume(volume)
	if err := pl.Start(); err != nil {
		return err
	}
	defer pl.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for range max(repeat, 1) {
		for _, e := range effects {
			if err := pl.Play(e); err != nil {
				logger.Warn("trigger dropped", slog.String("effect", e.String()), slog.Any("error", err))
			}
			if !sleep(ctx, gap) {
				return nil
			}
		}
	}
	return waitSilent(ctx, pl)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// waitSilent returns once no voice has been playing for two consecutive polls.
func waitSilent(ctx context.Context, pl *sfxmux.Player) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	quiet := 0
	for quiet < 2 {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if pl.ActiveVoices() == 0 {
			quiet++
		} else {
			quiet = 0
		}
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	effects, err := parseEffects(args)
	if err != nil {
		return err
	}
	if sampleRate <= 0 {
		return sfxmux.ErrInvalidSampleRate
	}
	m := sfxmux.NewMultiplexer(float64(sampleRate), 1)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-12s %8s %8s %8s %10s\n", "effect", "seconds", "peak", "rms", "pitch(Hz)")
	for _, e := range effects {
		s, _ := m.Signal(e)
		samples := sfxmux.RenderSamples([]sfxmux.Effect{e}, sampleRate, s.Duration())
		st, err := analyze(samples, sampleRate)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", e, err)
		}
		fmt.Fprintf(w, "%-12s %8.2f %8.4f %8.4f %10.1f\n", e, s.Duration(), st.peak, st.rms, st.pitch)
	}
	return nil
}
