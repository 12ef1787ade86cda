package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lcd-pong/internal/capture"
	"github.com/vovakirdan/lcd-pong/internal/config"
	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/hal"
	"github.com/vovakirdan/lcd-pong/internal/pong"
)

var (
	flagTicks int
	flagHold  []string
	flagBMP   string
	flagASCII bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless match and print the result",
	Long: `Runs the match without a terminal UI: the periodic tick is fired by hand
and the main loop runs after every tick. Held buttons stay held for the
whole run.

Buttons: left-up, left-down, right-up, right-down

Examples:
  lcdpong simulate --ticks 300
  lcdpong simulate --ticks 2000 --hold left-up --hold right-down
  lcdpong simulate --ticks 60 --bmp frame.bmp --ascii`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 300, "Number of periodic ticks to run")
	simulateCmd.Flags().StringArrayVar(&flagHold, "hold", nil, "Button held for the whole run (repeatable)")
	simulateCmd.Flags().StringVar(&flagBMP, "bmp", "", "Write the final frame to this BMP file")
	simulateCmd.Flags().BoolVar(&flagASCII, "ascii", false, "Print the final frame as text")
}

func runSimulate(cmd *cobra.Command, args []string) {
	if err := simulateCommand(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func simulateCommand(w io.Writer) error {
	held, err := parseHeld(flagHold)
	if err != nil {
		return err
	}

	cfg, logger, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	res, err := simulate(cfg, held, flagTicks, logger)
	if err != nil {
		return err
	}

	printResult(w, res)
	if flagASCII {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.Frame.ASCII(res.Background))
	}
	if flagBMP != "" {
		if err := capture.SaveBMP(flagBMP, res.Frame); err != nil {
			return err
		}
		fmt.Fprintf(w, "Frame:     %s\n", flagBMP)
	}
	return nil
}

// simResult is the outcome of a headless run.
type simResult struct {
	Snapshot   pong.Snapshot
	Ticks      int
	Frames     int
	Frame      *core.Framebuffer
	Background core.Color
}

func parseHeld(names []string) (core.ButtonSet, error) {
	var held core.ButtonSet
	for _, name := range names {
		b, err := core.ParseButton(name)
		if err != nil {
			return 0, err
		}
		held.Set(b)
	}
	return held, nil
}

// simulate plays up to ticks periodic ticks, servicing the main loop after
// each one, and stops early when the match ends.
func simulate(cfg config.Config, held core.ButtonSet, ticks int, logger *log.Logger) (simResult, error) {
	settings, err := pong.SettingsFromConfig(cfg)
	if err != nil {
		return simResult{}, err
	}

	rt := settings.Runtime
	fb := core.NewFramebuffer(rt.ScreenW, rt.ScreenH)
	ticker := &hal.Manual{}
	frames := 0
	game := pong.New(settings, pong.Hardware{
		Display: fb,
		Buttons: hal.ButtonFunc(func() core.ButtonSet { return held }),
		Ticker:  ticker,
	},
		pong.WithLogger(logger),
		pong.WithFrameHook(func() { frames++ }),
	)

	game.Start(context.Background())
	game.Service()

	ran := 0
	for ran < ticks && !game.State().Terminal() {
		if ticker.Fire(1) == 0 {
			break
		}
		ran++
		game.Service()
	}
	ticker.Stop()

	return simResult{
		Snapshot:   game.Snapshot(),
		Ticks:      ran,
		Frames:     frames,
		Frame:      fb,
		Background: settings.Palette.Background,
	}, nil
}

func printResult(w io.Writer, res simResult) {
	snap := res.Snapshot
	left, right := snap.Glyphs()

	fmt.Fprintf(w, "Ticks:     %d\n", res.Ticks)
	fmt.Fprintf(w, "Steps:     %d\n", snap.Steps)
	fmt.Fprintf(w, "Frames:    %d\n", res.Frames)
	fmt.Fprintf(w, "Ball:      (%d, %d) moving (%d, %d)\n", snap.Ball.X, snap.Ball.Y, snap.BallVelocity.X, snap.BallVelocity.Y)
	fmt.Fprintf(w, "Paddles:   left (%d, %d), right (%d, %d)\n", snap.LeftPaddle.X, snap.LeftPaddle.Y, snap.RightPaddle.X, snap.RightPaddle.Y)
	fmt.Fprintf(w, "Score:     %c - %c\n", left, right)
	fmt.Fprintf(w, "State:     %s\n", snap.State)
	if banner := snap.State.Banner(); banner != "" {
		fmt.Fprintf(w, "Result:    %s\n", banner)
	}
}
