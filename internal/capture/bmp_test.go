package capture

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/lcd-pong/internal/core"
)

func TestSaveBMP(t *testing.T) {
	fb := core.NewFramebuffer(16, 20)
	fb.Set(3, 4, core.ColorWhite)
	fb.Set(10, 15, core.ColorRed)

	path := filepath.Join(t.TempDir(), "shots", "frame.bmp")
	if err := SaveBMP(path, fb); err != nil {
		t.Fatalf("SaveBMP() failed: %v", err)
	}

	img, err := ReadBMP(path)
	if err != nil {
		t.Fatalf("ReadBMP() failed: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 20 {
		t.Fatalf("Bounds() = %v, expected 16x20", img.Bounds())
	}

	tests := []struct {
		x, y    int
		r, g, b uint32
	}{
		{3, 4, 0xffff, 0xffff, 0xffff},
		{10, 15, 0xffff, 0, 0},
		{0, 0, 0, 0, 0},
	}
	for _, tc := range tests {
		r, g, b, _ := img.At(tc.x, tc.y).RGBA()
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("At(%d, %d) = (%x, %x, %x), expected (%x, %x, %x)", tc.x, tc.y, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestScreenshotPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	got := ScreenshotPath("/tmp/shots", "pong", now)
	if got != filepath.Join("/tmp/shots", "pong_20240309_140507.bmp") {
		t.Errorf("ScreenshotPath() = %q", got)
	}
}

func TestReadBMPMissing(t *testing.T) {
	if _, err := ReadBMP(filepath.Join(t.TempDir(), "nope.bmp")); err == nil {
		t.Error("ReadBMP() of a missing file should fail")
	}
}
