// Package direct draws the LCD straight onto a tcell screen, two pixels per
// cell, with no retained view model in between.
package direct

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/lcd-pong/internal/core"
)

const upperHalf = '▀'

// Display implements hal.Display and hal.Flusher on a tcell screen. Pixels
// are mirrored in a framebuffer so each cell can be rebuilt from the pixel
// pair it shows.
type Display struct {
	mu     sync.Mutex
	screen tcell.Screen
	fb     *core.Framebuffer
	origin core.Vec2 // cell of pixel (0, 0)
	bg     core.Color
	styles map[[2]core.Color]tcell.Style
}

// NewDisplay creates a width x height pixel display whose top-left pixel
// lands in the cell at origin.
func NewDisplay(screen tcell.Screen, width, height int, origin core.Vec2, bg core.Color) *Display {
	fb := core.NewFramebuffer(width, height)
	fb.Clear(bg)
	return &Display{
		screen: screen,
		fb:     fb,
		origin: origin,
		bg:     bg,
		styles: make(map[[2]core.Color]tcell.Style),
	}
}

// Framebuffer returns the pixel mirror.
func (d *Display) Framebuffer() *core.Framebuffer {
	return d.fb
}

// SetArea implements hal.Display.
func (d *Display) SetArea(r core.Region) {
	d.fb.SetArea(r)
}

// WriteColor implements hal.Display.
func (d *Display) WriteColor(c core.Color) {
	p := d.fb.Cursor()
	d.fb.WriteColor(c)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawCell(p.X, p.Y/2)
}

// Flush implements hal.Flusher.
func (d *Display) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.screen.Show()
}

// Repaint redraws every cell, e.g. after a resize.
func (d *Display) Repaint() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for row := 0; row < (d.fb.Height()+1)/2; row++ {
		for x := 0; x < d.fb.Width(); x++ {
			d.drawCell(x, row)
		}
	}
	d.screen.Sync()
}

// DrawText writes a line of text at the given cell, outside the pixel area.
func (d *Display) DrawText(x, y int, text string, style tcell.Style) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, r := range []rune(text) {
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}

// drawCell rebuilds one cell from its pixel pair. Caller holds d.mu.
func (d *Display) drawCell(x, row int) {
	if x < 0 || x >= d.fb.Width() || row < 0 {
		return
	}
	top := d.fb.Get(x, 2*row)
	bottom := d.bg
	if 2*row+1 < d.fb.Height() {
		bottom = d.fb.Get(x, 2*row+1)
	}
	d.screen.SetContent(d.origin.X+x, d.origin.Y+row, upperHalf, nil, d.style(top, bottom))
}

func (d *Display) style(top, bottom core.Color) tcell.Style {
	key := [2]core.Color{top, bottom}
	if s, ok := d.styles[key]; ok {
		return s
	}
	s := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
	d.styles[key] = s
	return s
}

func tcellColor(c core.Color) tcell.Color {
	r, g, b := c.RGB8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
