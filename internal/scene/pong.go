package scene

import "github.com/vovakirdan/lcd-pong/internal/core"

// Fixed Pong geometry.
const (
	BallHalfW   = 4
	BallHalfH   = 4
	PaddleHalfW = 1
	PaddleHalfH = 11

	LeftPaddleX      = 5 // center column of the left paddle
	RightPaddleInset = 7 // right paddle center is this far from the right edge
)

// BallVelocity is the ball's velocity at serve.
var BallVelocity = core.V(-1, 1)

// Paddle velocities while a button is held.
var (
	PaddleUp   = core.V(0, -1)
	PaddleDown = core.V(0, 1)
)

// Palette colors the four Pong layers.
type Palette struct {
	Background core.Color
	Ball       core.Color
	Paddle     core.Color
	Field      core.Color
}

// DefaultPalette is white pieces on a black screen.
func DefaultPalette() Palette {
	return Palette{
		Background: core.ColorBlack,
		Ball:       core.ColorWhite,
		Paddle:     core.ColorWhite,
		Field:      core.ColorWhite,
	}
}

// Pong is the four-layer scene of a Pong match with named handles for every
// layer and moving entry.
type Pong struct {
	*Scene

	Ball        LayerID
	Field       LayerID
	LeftPaddle  LayerID
	RightPaddle LayerID

	BallMover MoverID
	LeftUp    MoverID
	LeftDown  MoverID
	RightUp   MoverID
	RightDown MoverID
}

// NewPong builds the match scene for a w x h screen. Painter's order is
// ball, field, right paddle, left paddle, so the ball is drawn on top.
func NewPong(w, h int, palette Palette) *Pong {
	sc := New(palette.Background)
	p := &Pong{Scene: sc}

	p.Ball = sc.AddLayer(core.SolidRect(BallHalfW, BallHalfH), core.V(w/2, h/2), palette.Ball)
	p.Field = sc.AddLayer(fieldShape(w, h), fieldCenter(w, h), palette.Field)
	p.RightPaddle = sc.AddLayer(core.SolidRect(PaddleHalfW, PaddleHalfH), core.V(w-RightPaddleInset, h/2), palette.Paddle)
	p.LeftPaddle = sc.AddLayer(core.SolidRect(PaddleHalfW, PaddleHalfH), core.V(LeftPaddleX, h/2), palette.Paddle)

	p.BallMover = sc.AddMover(p.Ball, BallVelocity)
	p.LeftUp = sc.AddMover(p.LeftPaddle, PaddleUp)
	p.LeftDown = sc.AddMover(p.LeftPaddle, PaddleDown)
	p.RightUp = sc.AddMover(p.RightPaddle, PaddleUp)
	p.RightDown = sc.AddMover(p.RightPaddle, PaddleDown)

	return p
}

// ButtonMover maps a player button to the moving entry it drives.
func (p *Pong) ButtonMover(b core.Button) MoverID {
	switch b {
	case core.ButtonLeftUp:
		return p.LeftUp
	case core.ButtonLeftDown:
		return p.LeftDown
	case core.ButtonRightUp:
		return p.RightUp
	default:
		return p.RightDown
	}
}

// FieldFence returns the playfield fence: the field outline's bounds.
func (p *Pong) FieldFence() core.Region {
	return p.Bounds(p.Field)
}

func fieldShape(w, h int) core.Shape { return core.RectOutline(w/2-1, h/2-1) }

func fieldCenter(w, h int) core.Vec2 { return core.V(w/2-1, h/2) }

// FieldBounds returns the playfield fence of a w x h screen without
// building the scene.
func FieldBounds(w, h int) core.Region {
	return fieldShape(w, h).Bounds(fieldCenter(w, h))
}

// MaxWrapOffset is the largest paddle wrap distance on a w x h screen that
// still lands a wrapped paddle wholly inside the playfield fence.
func MaxWrapOffset(w, h int) int {
	return FieldBounds(w, h).Height() - 2*PaddleHalfH
}
