package pong

import (
	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/physics"
)

// WinScore is the first score with no display glyph. Reaching it ends the
// match.
const WinScore = 10

// MatchState is the score/termination state machine. Both won states are
// terminal.
type MatchState int32

const (
	Playing MatchState = iota
	PlayerOneWon
	PlayerTwoWon
)

// String returns a human-readable name for the state.
func (s MatchState) String() string {
	switch s {
	case Playing:
		return "playing"
	case PlayerOneWon:
		return "player 1 won"
	case PlayerTwoWon:
		return "player 2 won"
	default:
		return "unknown"
	}
}

// Terminal returns true once the match is over.
func (s MatchState) Terminal() bool {
	return s == PlayerOneWon || s == PlayerTwoWon
}

// Banner returns the win message for a terminal state, or empty.
func (s MatchState) Banner() string {
	switch s {
	case PlayerOneWon:
		return "PLAYER 1 WINS"
	case PlayerTwoWon:
		return "PLAYER 2 WINS"
	default:
		return ""
	}
}

// ScoreGlyph maps a score to its display digit. The second result is false
// when the score has no glyph.
func ScoreGlyph(n int) (rune, bool) {
	if n < 0 || n >= WinScore {
		return 0, false
	}
	return rune('0' + n), true
}

// Snapshot is a consistent view of the match for presentation layers.
type Snapshot struct {
	Score        physics.Score
	State        MatchState
	Ball         core.Vec2
	BallVelocity core.Vec2
	LeftPaddle   core.Vec2
	RightPaddle  core.Vec2
	Steps        int64 // physics steps run so far
}

// Glyphs returns the display digits of both scores, '?' for a score with
// no glyph.
func (s Snapshot) Glyphs() (left, right rune) {
	left, ok := ScoreGlyph(s.Score.Left)
	if !ok {
		left = '?'
	}
	right, ok = ScoreGlyph(s.Score.Right)
	if !ok {
		right = '?'
	}
	return left, right
}
