// Package tui provides the Bubble Tea presentation backend. The match runs
// on its own goroutine against an in-memory LCD; the program is told to
// repaint after every redraw pass.
package tui

// FrameMsg is sent after the match finishes a redraw pass.
type FrameMsg struct{}

// DoneMsg is sent when the match loop returns.
type DoneMsg struct {
	Err error
}
