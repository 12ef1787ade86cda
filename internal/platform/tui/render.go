package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lcd-pong/internal/core"
)

// upperHalf draws the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const upperHalf = '▀'

// cellPair is the two pixels packed into one terminal cell.
type cellPair struct {
	top, bottom core.Color
}

// span is a run of identical cells on one terminal line.
type span struct {
	pair cellPair
	n    int
}

// styleCache maps cell colors to lipgloss styles.
type styleCache map[cellPair]lipgloss.Style

func (c styleCache) get(p cellPair) lipgloss.Style {
	if s, ok := c[p]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.top.Hex())).
		Background(lipgloss.Color(p.bottom.Hex()))
	c[p] = s
	return s
}

// halfBlockLines packs the framebuffer two rows per line and groups
// adjacent identical cells. An odd last row is padded with bg.
func halfBlockLines(fb *core.Framebuffer, bg core.Color) [][]span {
	lines := make([][]span, 0, (fb.Height()+1)/2)
	for y := 0; y < fb.Height(); y += 2 {
		top := fb.Row(y)
		bottom := make([]core.Color, fb.Width())
		if y+1 < fb.Height() {
			bottom = fb.Row(y + 1)
		} else {
			for i := range bottom {
				bottom[i] = bg
			}
		}

		var line []span
		for x := 0; x < fb.Width(); x++ {
			p := cellPair{top: top[x], bottom: bottom[x]}
			if n := len(line); n > 0 && line[n-1].pair == p {
				line[n-1].n++
				continue
			}
			line = append(line, span{pair: p, n: 1})
		}
		lines = append(lines, line)
	}
	return lines
}

// RenderFramebuffer converts the LCD into a styled string, one terminal
// line per two pixel rows.
func RenderFramebuffer(fb *core.Framebuffer, bg core.Color) string {
	lines := halfBlockLines(fb, bg)
	styles := make(styleCache)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(fb.Width()*len(lines)*4 + len(lines))

	for i, line := range lines {
		if i > 0 {
			sb.WriteRune('\n')
		}
		for _, s := range line {
			run := strings.Repeat(string(upperHalf), s.n)
			sb.WriteString(styles.get(s.pair).Render(run))
		}
	}
	return sb.String()
}
