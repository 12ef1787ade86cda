package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lcd-pong/internal/capture"
	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/hal"
	"github.com/vovakirdan/lcd-pong/internal/logging"
	"github.com/vovakirdan/lcd-pong/internal/pong"
)

var (
	scoreStyle  = lipgloss.NewStyle().Bold(true)
	bannerStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// Model is the Bubble Tea model for a running match. The match itself is
// driven elsewhere; the model forwards keys and repaints the LCD.
type Model struct {
	game    *pong.Game
	fb      *core.Framebuffer
	latch   *hal.KeyLatch
	keys    KeyMap
	help    help.Model
	shotDir string
	log     *log.Logger
	now     func() time.Time

	snap     pong.Snapshot
	status   string
	done     bool
	err      error
	quitting bool
}

// NewModel creates a model presenting game, which draws into fb and reads
// its buttons from latch.
func NewModel(game *pong.Game, fb *core.Framebuffer, latch *hal.KeyLatch, shotDir string, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	return Model{
		game:    game,
		fb:      fb,
		latch:   latch,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		shotDir: shotDir,
		log:     logger,
		now:     time.Now,
		snap:    game.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		m.snap = m.game.Snapshot()
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		m.snap = m.game.Snapshot()
		if msg.Err != nil {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if b, ok := m.keys.Button(msg); ok && !m.done {
		m.latch.Press(b)
	}
	return m, nil
}

// saveScreenshot writes the LCD to a BMP and returns a status line.
func (m Model) saveScreenshot() string {
	path := capture.ScreenshotPath(m.shotDir, "pong", m.now())
	if err := capture.SaveBMP(path, m.fb); err != nil {
		m.log.Warn("screenshot failed", "err", err)
		return fmt.Sprintf("screenshot failed: %v", err)
	}
	m.log.Info("screenshot saved", "path", path)
	return "saved " + path
}

// Err returns the error the match ended with, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	left, right := m.snap.Glyphs()
	var sb strings.Builder
	sb.WriteString(scoreStyle.Render(fmt.Sprintf("P1 %c   P2 %c", left, right)))
	sb.WriteRune('\n')
	sb.WriteString(RenderFramebuffer(m.fb, m.game.Settings().Palette.Background))
	sb.WriteRune('\n')

	switch {
	case m.err != nil && !errors.Is(m.err, context.Canceled):
		sb.WriteString(bannerStyle.Render("ERROR: " + m.err.Error()))
		sb.WriteRune('\n')
	case m.snap.State.Terminal():
		sb.WriteString(bannerStyle.Render(m.snap.State.Banner()))
		sb.WriteRune('\n')
	}
	if m.status != "" {
		sb.WriteString(statusStyle.Render(m.status))
		sb.WriteRune('\n')
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}
