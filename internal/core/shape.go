package core

// ShapeKind tags the Shape variant.
type ShapeKind uint8

const (
	ShapeSolid   ShapeKind = iota // filled rectangle
	ShapeOutline                  // hollow rectangle frame
)

// OutlineBorder is the thickness of a RectOutline frame band.
const OutlineBorder = 1

// Shape is an axis-aligned rectangle described by its half extents around a
// center position. Shapes are shared and never mutated after construction.
type Shape struct {
	Kind   ShapeKind
	Half   Vec2 // half width, half height
	Border int  // frame thickness, outline only
}

// SolidRect creates a filled rectangle shape.
func SolidRect(halfW, halfH int) Shape {
	return Shape{Kind: ShapeSolid, Half: V(halfW, halfH)}
}

// RectOutline creates a hollow rectangle whose visible part is a thin band
// along its bounds.
func RectOutline(halfW, halfH int) Shape {
	return Shape{Kind: ShapeOutline, Half: V(halfW, halfH), Border: OutlineBorder}
}

// Bounds returns the box {center - half, center + half}.
func (s Shape) Bounds(center Vec2) Region {
	return NewRegion(center.Sub(s.Half), center.Add(s.Half))
}

// Contains reports whether point p is covered by the shape drawn at center.
func (s Shape) Contains(center, p Vec2) bool {
	bounds := s.Bounds(center)
	if !bounds.Contains(p) {
		return false
	}

	switch s.Kind {
	case ShapeOutline:
		inner, ok := bounds.Inset(s.Border)
		if !ok {
			return true // frame thicker than the box, nothing is hollow
		}
		return !inner.Contains(p)
	default:
		return true
	}
}
