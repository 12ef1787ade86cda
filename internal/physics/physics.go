// Package physics advances moving layers against fences: free movement with
// wraparound for paddles, and reflect-and-score for the ball.
//
// Both functions write only the Next slot and velocities of the scene. The
// caller must hold the scene lock while they run.
package physics

import (
	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/scene"
)

// PaddleSlack is the tolerance band, in pixels, applied to the vertical
// alignment test between ball and paddle.
const PaddleSlack = 10

// Side identifies a player side.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Score holds both players' points. Left is player one.
type Score struct {
	Left  int
	Right int
}

// Contact reports what the ball touched during one step.
type Contact struct {
	Wall   bool // breached the playfield fence on some axis
	Goal   Side // goal line breached, SideNone if not
	Paddle Side // paddle struck, SideNone if not
}

// Any returns true if the step produced an audible contact.
func (c Contact) Any() bool {
	return c.Wall || c.Paddle != SideNone
}

// AdvanceWithWrap moves each entry's layer by its velocity. On each axis a
// box leaving the fence through the near edge is shifted forward by wrap
// and a box leaving through the far edge is shifted back by wrap.
func AdvanceWithWrap(sc *scene.Scene, movers []scene.MoverID, fence core.Region, wrap int) {
	for _, id := range movers {
		m := sc.Mover(id)
		l := sc.Layer(m.Layer)

		cand := l.Next.Add(m.Velocity)
		box := l.Shape.Bounds(cand)
		for _, a := range core.Axes {
			n := cand.Axis(a)
			if box.Lo(a) < fence.Lo(a) {
				n += wrap
			}
			if box.Hi(a) > fence.Hi(a) {
				n -= wrap
			}
			cand = cand.WithAxis(a, n)
		}
		l.Next = cand
	}
}

// AdvanceWithCollision moves the ball one step inside the playfield fence.
//
// A fence breach on an axis negates that velocity component and reflects
// the candidate by twice the new velocity. Breaching the left goal line
// scores for the right player and vice versa; axis processing stops at a
// goal and paddle contact is not tested. Otherwise the ball bounces off a
// paddle it meets head on, vertically aligned within PaddleSlack. Paddle
// fences are the paddle boxes one step ahead along left and right.
func AdvanceWithCollision(sc *scene.Scene, ball, left, right scene.MoverID, fence core.Region, score *Score) Contact {
	var c Contact

	bm := sc.Mover(ball)
	bl := sc.Layer(bm.Layer)
	v := bm.Velocity

	cand := bl.Next.Add(v)
	box := bl.Shape.Bounds(cand)
	leftFence := paddleFence(sc, left)
	rightFence := paddleFence(sc, right)

	for _, a := range core.Axes {
		nearBreach := box.Lo(a) < fence.Lo(a)
		farBreach := box.Hi(a) > fence.Hi(a)
		if !nearBreach && !farBreach {
			continue
		}

		nv := -v.Axis(a)
		v = v.WithAxis(a, nv)
		cand = cand.WithAxis(a, cand.Axis(a)+2*nv)
		c.Wall = true

		if a == core.AxisX {
			if nearBreach {
				score.Right++
				c.Goal = SideLeft
			} else {
				score.Left++
				c.Goal = SideRight
			}
			break
		}
	}

	if c.Goal == SideNone {
		switch {
		case v.X < 0 && meets(box, leftFence):
			c.Paddle = SideLeft
		case v.X > 0 && meets(box, rightFence):
			c.Paddle = SideRight
		}
		if c.Paddle != SideNone {
			v.X = -v.X
			cand.X += 2 * v.X
		}
	}

	bm.Velocity = v
	bl.Next = cand
	return c
}

func paddleFence(sc *scene.Scene, id scene.MoverID) core.Region {
	m := sc.Mover(id)
	l := sc.Layer(m.Layer)
	return l.Shape.Bounds(l.Next.Add(m.Velocity))
}

// meets reports whether the ball box touches the paddle fence horizontally
// and is level with it within the slack band.
func meets(box, paddle core.Region) bool {
	return box.TopLeft.X <= paddle.BottomRight.X &&
		box.BottomRight.X >= paddle.TopLeft.X &&
		box.BottomRight.Y-PaddleSlack < paddle.BottomRight.Y &&
		box.TopLeft.Y+PaddleSlack > paddle.TopLeft.Y
}
