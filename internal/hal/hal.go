// Package hal defines the hardware collaborators the Pong core talks to: a
// windowed pixel display, four buttons, a tone generator and a periodic
// tick source. Presentation backends implement these for a terminal.
package hal

import (
	"context"

	"github.com/vovakirdan/lcd-pong/internal/core"
)

// Display is a pixel-plot primitive. SetArea selects an inclusive window
// and WriteColor fills it one pixel at a time in row-major order.
type Display interface {
	SetArea(r core.Region)
	WriteColor(c core.Color)
}

// Flusher is implemented by displays that batch pixels and need an explicit
// present step after a redraw pass.
type Flusher interface {
	Flush()
}

// Buttons reports the instantaneous pressed state of the four buttons.
type Buttons interface {
	Pressed() core.ButtonSet
}

// Tone controls the tone generator. Period 0 silences it.
type Tone interface {
	SetTonePeriod(period int)
}

// Ticker invokes a callback at a fixed rate until stopped.
type Ticker interface {
	Start(ctx context.Context, fn func())
	Stop()
}

// Silent is a Tone that makes no sound.
type Silent struct{}

// SetTonePeriod implements Tone.
func (Silent) SetTonePeriod(int) {}

// NoButtons is a Buttons that never reports a press.
type NoButtons struct{}

// Pressed implements Buttons.
func (NoButtons) Pressed() core.ButtonSet { return 0 }

// ButtonFunc adapts a function to Buttons.
type ButtonFunc func() core.ButtonSet

// Pressed implements Buttons.
func (f ButtonFunc) Pressed() core.ButtonSet { return f() }
