package core

import (
	"image"
	"strings"
	"testing"
)

func TestNewFramebuffer(t *testing.T) {
	fb := NewFramebuffer(16, 12)

	if fb.Width() != 16 {
		t.Errorf("Width() = %d, expected 16", fb.Width())
	}
	if fb.Height() != 12 {
		t.Errorf("Height() = %d, expected 12", fb.Height())
	}

	// Check that it's initialized black
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.Get(x, y) != ColorBlack {
				t.Fatalf("New framebuffer should be black, got %v at (%d, %d)", fb.Get(x, y), x, y)
			}
		}
	}
}

func TestFramebufferSetGet(t *testing.T) {
	fb := NewFramebuffer(10, 10)

	fb.Set(5, 5, ColorRed)
	if fb.Get(5, 5) != ColorRed {
		t.Errorf("Get(5, 5) = %v, expected red", fb.Get(5, 5))
	}

	// Out of bounds should be silent
	fb.Set(-1, 0, ColorWhite)
	fb.Set(100, 0, ColorWhite)
	fb.Set(0, -1, ColorWhite)
	fb.Set(0, 100, ColorWhite)

	if fb.Get(-1, 0) != ColorBlack {
		t.Error("Out of bounds Get should return black")
	}
}

func TestFramebufferAreaStream(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	area := NewRegion(V(2, 3), V(4, 4))

	fb.SetArea(area)
	if fb.Cursor() != V(2, 3) {
		t.Errorf("Cursor() = %v, expected (2, 3)", fb.Cursor())
	}

	colors := []Color{ColorRed, ColorGreen, ColorBlue, ColorWhite, ColorYellow, ColorCyan}
	for _, c := range colors {
		fb.WriteColor(c)
	}

	// Row-major order inside the window
	expected := map[Vec2]Color{
		V(2, 3): ColorRed, V(3, 3): ColorGreen, V(4, 3): ColorBlue,
		V(2, 4): ColorWhite, V(3, 4): ColorYellow, V(4, 4): ColorCyan,
	}
	for p, c := range expected {
		if got := fb.Get(p.X, p.Y); got != c {
			t.Errorf("Get(%d, %d) = %v, expected %v", p.X, p.Y, got, c)
		}
	}

	// Cursor wraps back to the window start
	if fb.Cursor() != V(2, 3) {
		t.Errorf("Cursor() after full window = %v, expected (2, 3)", fb.Cursor())
	}

	// Nothing outside the window was touched
	if fb.Get(5, 3) != ColorBlack || fb.Get(2, 5) != ColorBlack {
		t.Error("WriteColor should not paint outside the window")
	}
}

func TestFramebufferAreaClipsOffscreen(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetArea(NewRegion(V(-1, 0), V(0, 0)))

	fb.WriteColor(ColorRed) // (-1, 0), dropped
	fb.WriteColor(ColorGreen)

	if fb.Get(0, 0) != ColorGreen {
		t.Errorf("Get(0, 0) = %v, expected green", fb.Get(0, 0))
	}
}

func TestFramebufferClearAndASCII(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorBlue)
	fb.Set(1, 0, ColorWhite)

	result := fb.ASCII(ColorBlue)
	expected := ".#.\n..."

	if result != expected {
		t.Errorf("ASCII() = %q, expected %q", result, expected)
	}
}

func TestFramebufferRow(t *testing.T) {
	fb := NewFramebuffer(5, 3)
	fb.Set(2, 1, ColorRed)

	row := fb.Row(1)
	if len(row) != 5 || row[2] != ColorRed {
		t.Errorf("Row(1) = %v", row)
	}

	// Out of bounds row
	if got := fb.Row(-1); len(got) != 5 {
		t.Errorf("Out of bounds row should have screen width, got %d", len(got))
	}
}

func TestFramebufferImage(t *testing.T) {
	fb := NewFramebuffer(8, 6)
	fb.Set(3, 2, ColorWhite)

	var img image.Image = fb
	if img.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}

	r, g, b, a := img.At(3, 2).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("At(3, 2) = (%x, %x, %x, %x), expected opaque white", r, g, b, a)
	}

	if !strings.Contains(fb.ASCII(ColorBlack), "#") {
		t.Error("ASCII() should show the white pixel")
	}
}
