package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lcd-pong/internal/audio"
	"github.com/vovakirdan/lcd-pong/internal/config"
	"github.com/vovakirdan/lcd-pong/internal/platform/tui"
	"github.com/vovakirdan/lcd-pong/internal/registry"
)

// Rows around the LCD: the score line above, banner, status and help below.
const chromeRows = 5

var (
	flagBackend string
	flagMute    bool
	flagForce   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a two-player match. The ball serves from the centre; a ball that
crosses a goal line scores for the other player. First to 10 wins.

Controls:
  W/S          - Player 1 paddle up/down
  Up/Down, I/K - Player 2 paddle up/down
  Ctrl+S       - Save a BMP screenshot to ~/.lcdpong/screenshots
  Q/Ctrl+C     - Quit

Examples:
  lcdpong play
  lcdpong play --backend direct
  lcdpong play --mute --config configs/colors.toml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", tui.BackendID, "Presentation backend (see 'lcdpong backends')")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().BoolVar(&flagForce, "force", false, "Play even if the terminal is too small")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	// Check if backend exists
	if !registry.Exists(flagBackend) {
		return fmt.Errorf("unknown backend %q (run 'lcdpong backends' to see available backends)", flagBackend)
	}

	cfg, logger, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	if !flagForce {
		if err := checkTerminal(cfg); err != nil {
			return err
		}
	}

	buzzer := audio.NewBuzzer(audio.Options{
		ClockHz: cfg.Tone.ClockHz,
		Volume:  cfg.Tone.Volume,
		Muted:   cfg.Tone.Muted || flagMute,
	})
	if !cfg.Tone.Muted && !flagMute {
		if err := buzzer.Initialize(); err != nil {
			// Non-fatal, the match runs without sound
			logger.Warn("audio unavailable", "err", err)
		}
	}
	defer buzzer.Close()

	backend, err := registry.Create(flagBackend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "backend", backend.ID())
	err = backend.Run(ctx, registry.Env{
		Config:        cfg,
		Logger:        logger,
		Tone:          buzzer,
		ScreenshotDir: screenshotDir(),
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("backend failed", "backend", backend.ID(), "err", err)
		return err
	}
	return nil
}

// checkTerminal fails when stdout is a terminal too small for the LCD.
func checkTerminal(cfg config.Config) error {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		// Not a terminal; let the backend decide
		return nil
	}

	needW := cfg.Screen.Width
	needH := (cfg.Screen.Height+1)/2 + chromeRows
	if width < needW || height < needH {
		return fmt.Errorf("terminal is %dx%d but the %dx%d LCD needs %dx%d; enlarge it, shrink screen in the config, or pass --force",
			width, height, cfg.Screen.Width, cfg.Screen.Height, needW, needH)
	}
	return nil
}
