// Package render repaints the display from the scene graph. It never keeps
// a copy of the screen: every pixel it emits is recomputed by probing the
// layers in painter's order.
package render

import (
	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/hal"
	"github.com/vovakirdan/lcd-pong/internal/scene"
)

// Engine streams scene pixels to a display.
type Engine struct {
	display hal.Display
	screen  core.Region
}

// NewEngine creates an engine for a display covering screen.
func NewEngine(display hal.Display, screen core.Region) *Engine {
	return &Engine{display: display, screen: screen}
}

// Redraw swaps the position slots of the given movers, then repaints the
// union of each mover's previous and current boxes. It returns the number
// of pixels written.
func (e *Engine) Redraw(sc *scene.Scene, movers ...scene.MoverID) int {
	sc.Swap(movers...)

	n := 0
	for _, m := range movers {
		damage := sc.DamageBounds(sc.Mover(m).Layer)
		if r, ok := damage.Intersect(e.screen); ok {
			n += e.paint(sc, r)
		}
	}
	e.flush()
	return n
}

// DrawAll paints every pixel of the screen.
func (e *Engine) DrawAll(sc *scene.Scene) int {
	n := e.paint(sc, e.screen)
	e.flush()
	return n
}

func (e *Engine) paint(sc *scene.Scene, r core.Region) int {
	e.display.SetArea(r)
	for y := r.TopLeft.Y; y <= r.BottomRight.Y; y++ {
		for x := r.TopLeft.X; x <= r.BottomRight.X; x++ {
			e.display.WriteColor(sc.Probe(core.V(x, y)))
		}
	}
	return r.Area()
}

func (e *Engine) flush() {
	if f, ok := e.display.(hal.Flusher); ok {
		f.Flush()
	}
}
