// Package core provides fundamental types and utilities for the LCD Pong core.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Axis selects one coordinate of a Vec2.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Axes lists both axes in processing order. The horizontal axis comes first
// because it carries the goal lines.
var Axes = [2]Axis{AxisX, AxisY}

// String returns a human-readable name for the axis.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// Vec2 is a pair of signed integer axis values.
// Used for positions, velocities, and box corners.
type Vec2 struct {
	X, Y int
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Axis returns the value on the given axis.
func (v Vec2) Axis(a Axis) int {
	if a == AxisY {
		return v.Y
	}
	return v.X
}

// WithAxis returns a copy of v with the given axis replaced.
func (v Vec2) WithAxis(a Axis, n int) Vec2 {
	if a == AxisY {
		v.Y = n
	} else {
		v.X = n
	}
	return v
}

// Region is an axis-aligned box given by inclusive corners.
// TopLeft is never greater than BottomRight on either axis.
type Region struct {
	TopLeft     Vec2
	BottomRight Vec2
}

// NewRegion creates a region spanning both corners, in any order.
func NewRegion(a, b Vec2) Region {
	return Region{
		TopLeft:     V(Min(a.X, b.X), Min(a.Y, b.Y)),
		BottomRight: V(Max(a.X, b.X), Max(a.Y, b.Y)),
	}
}

// Lo returns the near edge on the given axis.
func (r Region) Lo(a Axis) int {
	return r.TopLeft.Axis(a)
}

// Hi returns the far edge on the given axis.
func (r Region) Hi(a Axis) int {
	return r.BottomRight.Axis(a)
}

// Width returns the number of columns covered.
func (r Region) Width() int {
	return r.BottomRight.X - r.TopLeft.X + 1
}

// Height returns the number of rows covered.
func (r Region) Height() int {
	return r.BottomRight.Y - r.TopLeft.Y + 1
}

// Area returns the number of pixels covered.
func (r Region) Area() int {
	return r.Width() * r.Height()
}

// Contains returns true if p lies inside the closed box.
func (r Region) Contains(p Vec2) bool {
	return p.X >= r.TopLeft.X && p.X <= r.BottomRight.X &&
		p.Y >= r.TopLeft.Y && p.Y <= r.BottomRight.Y
}

// Overlaps returns true if the two boxes share at least one pixel.
func (r Region) Overlaps(o Region) bool {
	if r.BottomRight.X < o.TopLeft.X || o.BottomRight.X < r.TopLeft.X {
		return false
	}
	if r.BottomRight.Y < o.TopLeft.Y || o.BottomRight.Y < r.TopLeft.Y {
		return false
	}
	return true
}

// Within returns true if r lies entirely inside fence.
func (r Region) Within(fence Region) bool {
	for _, a := range Axes {
		if r.Lo(a) < fence.Lo(a) || r.Hi(a) > fence.Hi(a) {
			return false
		}
	}
	return true
}

// Union returns the smallest region covering both boxes.
func (r Region) Union(o Region) Region {
	return Region{
		TopLeft:     V(Min(r.TopLeft.X, o.TopLeft.X), Min(r.TopLeft.Y, o.TopLeft.Y)),
		BottomRight: V(Max(r.BottomRight.X, o.BottomRight.X), Max(r.BottomRight.Y, o.BottomRight.Y)),
	}
}

// Intersect returns the overlap of both boxes.
// The second result is false when they do not overlap.
func (r Region) Intersect(o Region) (Region, bool) {
	if !r.Overlaps(o) {
		return Region{}, false
	}
	return Region{
		TopLeft:     V(Max(r.TopLeft.X, o.TopLeft.X), Max(r.TopLeft.Y, o.TopLeft.Y)),
		BottomRight: V(Min(r.BottomRight.X, o.BottomRight.X), Min(r.BottomRight.Y, o.BottomRight.Y)),
	}, true
}

// Inset shrinks the region by n pixels on every side.
// The second result is false when nothing is left.
func (r Region) Inset(n int) (Region, bool) {
	in := Region{
		TopLeft:     V(r.TopLeft.X+n, r.TopLeft.Y+n),
		BottomRight: V(r.BottomRight.X-n, r.BottomRight.Y-n),
	}
	if in.TopLeft.X > in.BottomRight.X || in.TopLeft.Y > in.BottomRight.Y {
		return Region{}, false
	}
	return in, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
