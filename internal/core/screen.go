package core

import (
	"image"
	"image/color"
	"strings"
	"sync"
)

// Framebuffer is an in-memory LCD. It accepts pixels the way the display
// controller does: select an inclusive window with SetArea, then stream
// colors in row-major order with WriteColor.
//
// It is safe for one writer and concurrent readers.
type Framebuffer struct {
	mu     sync.RWMutex
	width  int
	height int
	pix    []Color

	area   Region
	cursor Vec2
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
	fb.area = fb.Rect()
	fb.cursor = fb.area.TopLeft
	return fb
}

// Width returns the screen width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the screen height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Rect returns the region covering the whole screen.
func (f *Framebuffer) Rect() Region {
	return NewRegion(V(0, 0), V(f.width-1, f.height-1))
}

// Clear fills the entire screen with one color.
func (f *Framebuffer) Clear(c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.pix {
		f.pix[i] = c
	}
}

// SetArea selects the window subsequent WriteColor calls fill and moves the
// write cursor to its top-left corner.
func (f *Framebuffer) SetArea(r Region) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.area = r
	f.cursor = r.TopLeft
}

// Cursor returns the position the next WriteColor call paints.
func (f *Framebuffer) Cursor() Vec2 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cursor
}

// WriteColor paints the pixel under the cursor and advances it row-major
// through the current window, wrapping back to the top-left corner after
// the last pixel. Off-screen pixels are consumed but not stored.
func (f *Framebuffer) WriteColor(c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.set(f.cursor.X, f.cursor.Y, c)

	f.cursor.X++
	if f.cursor.X > f.area.BottomRight.X {
		f.cursor.X = f.area.TopLeft.X
		f.cursor.Y++
		if f.cursor.Y > f.area.BottomRight.Y {
			f.cursor.Y = f.area.TopLeft.Y
		}
	}
}

// Set paints a single pixel.
// Out-of-bounds coordinates are silently ignored.
func (f *Framebuffer) Set(x, y int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set(x, y, c)
}

func (f *Framebuffer) set(x, y int, c Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = c
}

// Get returns the pixel at the given position.
// Returns black for out-of-bounds coordinates.
func (f *Framebuffer) Get(x, y int) Color {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return ColorBlack
	}
	return f.pix[y*f.width+x]
}

// Row returns a copy of the specified row.
func (f *Framebuffer) Row(y int) []Color {
	row := make([]Color, f.width)
	if y < 0 || y >= f.height {
		return row
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	copy(row, f.pix[y*f.width:(y+1)*f.width])
	return row
}

// ColorModel implements image.Image.
func (f *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// At implements image.Image.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.Get(x, y)
}

// ASCII renders the screen as text, '.' for pixels matching bg and '#'
// for everything else. Each row is joined with newlines.
func (f *Framebuffer) ASCII(bg Color) string {
	var sb strings.Builder
	sb.Grow(f.width*f.height + f.height)

	f.mu.RLock()
	defer f.mu.RUnlock()
	for y := 0; y < f.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < f.width; x++ {
			if f.pix[y*f.width+x] == bg {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}
