package core

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Color is a 16-bit pixel in the BGR565 layout the LCD controller expects:
// blue in bits 15-11, green in bits 10-5, red in bits 4-0.
type Color uint16

// Predefined LCD palette.
const (
	ColorBlack   Color = 0x0000
	ColorWhite   Color = 0xffff
	ColorRed     Color = 0x001f
	ColorGreen   Color = 0x07e0
	ColorBlue    Color = 0xf800
	ColorYellow  Color = 0x07ff
	ColorCyan    Color = 0xffe0
	ColorMagenta Color = 0xf81f
	ColorOrange  Color = 0x053f
	ColorGray    Color = 0x8410
)

var colorNames = map[string]Color{
	"black":   ColorBlack,
	"white":   ColorWhite,
	"red":     ColorRed,
	"green":   ColorGreen,
	"blue":    ColorBlue,
	"yellow":  ColorYellow,
	"cyan":    ColorCyan,
	"magenta": ColorMagenta,
	"orange":  ColorOrange,
	"gray":    ColorGray,
}

// ParseColor resolves a palette name (case-insensitive).
func ParseColor(name string) (Color, error) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown color %q (known: %s)", name, strings.Join(ColorNames(), ", "))
	}
	return c, nil
}

// ColorNames returns the palette names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(colorNames))
	for name := range colorNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns the palette name, or a hex literal for other values.
func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("0x%04x", uint16(c))
}

// RGB8 expands the channels to 8 bits each.
func (c Color) RGB8() (r, g, b uint8) {
	r5 := uint8(c & 0x1f)
	g6 := uint8((c >> 5) & 0x3f)
	b5 := uint8((c >> 11) & 0x1f)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB8()
	return color.RGBA{R: r8, G: g8, B: b8, A: 0xff}.RGBA()
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
