package direct

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/lcd-pong/internal/capture"
	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/hal"
	"github.com/vovakirdan/lcd-pong/internal/logging"
	"github.com/vovakirdan/lcd-pong/internal/pong"
	"github.com/vovakirdan/lcd-pong/internal/registry"
)

// BackendID is the command-line name of this backend.
const BackendID = "direct"

func init() {
	registry.Register(BackendID, func() registry.Backend { return &Backend{} })
}

// Backend plays a match on a raw tcell screen.
type Backend struct {
	// NewScreen opens the terminal. Nil uses tcell.NewScreen.
	NewScreen func() (tcell.Screen, error)
}

// ID implements registry.Backend.
func (*Backend) ID() string { return BackendID }

// Title implements registry.Backend.
func (*Backend) Title() string { return "tcell, direct cell writes" }

var (
	textStyle   = tcell.StyleDefault.Bold(true)
	bannerStyle = tcell.StyleDefault.Bold(true).Reverse(true)
	statusStyle = tcell.StyleDefault.Dim(true)
)

// quitKey reports whether the key ends the session.
func quitKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		return r == 'q'
	}
	return false
}

// buttonFor maps a key to the paddle button it presses: w/s for player 1,
// the arrow keys or i/k for player 2.
func buttonFor(key tcell.Key, r rune) (core.Button, bool) {
	switch key {
	case tcell.KeyUp:
		return core.ButtonRightUp, true
	case tcell.KeyDown:
		return core.ButtonRightDown, true
	case tcell.KeyRune:
		switch r {
		case 'w':
			return core.ButtonLeftUp, true
		case 's':
			return core.ButtonLeftDown, true
		case 'i':
			return core.ButtonRightUp, true
		case 'k':
			return core.ButtonRightDown, true
		}
	}
	return 0, false
}

// session is one match on an open screen.
type session struct {
	screen  tcell.Screen
	display *Display
	game    *pong.Game
	latch   *hal.KeyLatch
	log     *log.Logger
	shotDir string

	mu     sync.Mutex
	status string
}

// Run implements registry.Backend.
func (b *Backend) Run(ctx context.Context, env registry.Env) error {
	settings, err := pong.SettingsFromConfig(env.Config)
	if err != nil {
		return err
	}
	logger := env.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	newScreen := b.NewScreen
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("direct: open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("direct: init screen: %w", err)
	}
	defer screen.Fini()
	screen.Clear()

	rt := settings.Runtime
	s := &session{
		screen:  screen,
		display: NewDisplay(screen, rt.ScreenW, rt.ScreenH, core.V(0, 1), settings.Palette.Background),
		latch:   hal.NewKeyLatch(time.Duration(env.Config.Input.HoldMS) * time.Millisecond),
		log:     logger,
		shotDir: env.ScreenshotDir,
	}
	s.game = pong.New(settings, pong.Hardware{
		Display: s.display,
		Buttons: s.latch,
		Tone:    env.Tone,
	},
		pong.WithLogger(logger),
		pong.WithFrameHook(s.drawStatus),
	)

	return s.loop(ctx)
}

// loop runs the match on a goroutine and handles terminal events until the
// player quits or the match fails.
func (s *session) loop(ctx context.Context) error {
	matchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		err := s.game.Run(matchCtx)
		result <- err
		//nolint:errcheck // Best-effort wakeup, a full queue is drained by the loop
		s.screen.PostEvent(tcell.NewEventInterrupt(err))
	}()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			//nolint:errcheck // Best-effort wakeup
			s.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
		case <-stop:
		}
	}()

	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			cancel()
			return <-result

		case *tcell.EventResize:
			s.display.Repaint()
			s.drawStatus()

		case *tcell.EventInterrupt:
			err, _ := ev.Data().(error)
			if err != nil {
				cancel()
				<-result
				if errors.Is(err, context.Canceled) && ctx.Err() == nil {
					return nil
				}
				return err
			}
			s.drawStatus()

		case *tcell.EventKey:
			if quitKey(ev.Key(), ev.Rune()) {
				cancel()
				if err := <-result; err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
			if ev.Key() == tcell.KeyCtrlS {
				s.screenshot()
				continue
			}
			if btn, ok := buttonFor(ev.Key(), ev.Rune()); ok && !s.game.State().Terminal() {
				s.latch.Press(btn)
			}
		}
	}
}

func (s *session) screenshot() {
	path := capture.ScreenshotPath(s.shotDir, "pong", time.Now())
	status := "saved " + path
	if err := capture.SaveBMP(path, s.display.Framebuffer()); err != nil {
		s.log.Warn("screenshot failed", "err", err)
		status = fmt.Sprintf("screenshot failed: %v", err)
	} else {
		s.log.Info("screenshot saved", "path", path)
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	s.drawStatus()
}

// drawStatus draws the score line above the LCD and the banner and status
// below it, then presents the screen.
func (s *session) drawStatus() {
	snap := s.game.Snapshot()
	left, right := snap.Glyphs()
	s.display.DrawText(0, 0, fmt.Sprintf("P1 %c   P2 %c", left, right), textStyle)

	below := 1 + (s.display.Framebuffer().Height()+1)/2
	if banner := snap.State.Banner(); banner != "" {
		s.display.DrawText(0, below, " "+banner+" ", bannerStyle)
	}
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()
	if status != "" {
		s.display.DrawText(0, below+1, status, statusStyle)
	}
	s.display.DrawText(0, below+2, "w/s P1  up/down P2  ctrl+s screenshot  q quit", statusStyle)
	s.display.Flush()
}
