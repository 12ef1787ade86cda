package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/hal"
	"github.com/vovakirdan/lcd-pong/internal/logging"
	"github.com/vovakirdan/lcd-pong/internal/pong"
	"github.com/vovakirdan/lcd-pong/internal/registry"
)

// BackendID is the command-line name of this backend.
const BackendID = "tea"

func init() {
	registry.Register(BackendID, func() registry.Backend { return Backend{} })
}

// Backend plays a match inside a Bubble Tea program.
type Backend struct{}

// ID implements registry.Backend.
func (Backend) ID() string { return BackendID }

// Title implements registry.Backend.
func (Backend) Title() string { return "Bubble Tea, half-block pixels" }

// Run implements registry.Backend.
func (Backend) Run(ctx context.Context, env registry.Env) error {
	settings, err := pong.SettingsFromConfig(env.Config)
	if err != nil {
		return err
	}
	logger := env.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	rt := settings.Runtime
	fb := core.NewFramebuffer(rt.ScreenW, rt.ScreenH)
	latch := hal.NewKeyLatch(time.Duration(env.Config.Input.HoldMS) * time.Millisecond)

	var p *tea.Program
	game := pong.New(settings, pong.Hardware{
		Display: fb,
		Buttons: latch,
		Tone:    env.Tone,
	},
		pong.WithLogger(logger),
		pong.WithFrameHook(func() { p.Send(FrameMsg{}) }),
	)

	model := NewModel(game, fb, latch, env.ScreenshotDir, logger)
	p = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	matchCtx, cancel := context.WithCancel(ctx)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		err := game.Run(matchCtx)
		p.Send(DoneMsg{Err: err})
	}()

	final, runErr := p.Run()
	cancel()
	<-finished

	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("tui: %w", runErr)
	}
	if m, ok := final.(Model); ok && m.Err() != nil && !errors.Is(m.Err(), context.Canceled) {
		return m.Err()
	}
	return nil
}
