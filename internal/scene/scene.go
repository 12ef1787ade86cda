// Package scene holds the static scene graph: an arena of layers addressed
// by stable index, the painter's order used to probe them, and the moving
// subset paired with velocities.
//
// Each layer carries three position slots. Next is written by physics and
// input handling, Current is what the redraw engine draws, and Previous is
// the position being vacated. Swap is the only operation that moves data
// between the slots and it holds the scene lock for its whole pass.
package scene

import (
	"sync"

	"github.com/vovakirdan/lcd-pong/internal/core"
)

// LayerID addresses a layer in the scene arena.
type LayerID int

// MoverID addresses a moving-layer entry.
type MoverID int

// Layer is one visible object on screen.
type Layer struct {
	Shape    core.Shape
	Previous core.Vec2
	Current  core.Vec2
	Next     core.Vec2
	Color    core.Color
}

// MovingLayer pairs a layer with its velocity. Several entries may refer to
// the same layer (a paddle has one entry per direction).
type MovingLayer struct {
	Layer    LayerID
	Velocity core.Vec2
}

// Scene is the process-lifetime scene graph.
type Scene struct {
	mu         sync.Mutex
	layers     []Layer
	order      []LayerID
	movers     []MovingLayer
	background core.Color
}

// New creates an empty scene painted over the given background color.
func New(background core.Color) *Scene {
	return &Scene{background: background}
}

// AddLayer places a new layer at pos and appends it to the painter's order.
// All three position slots start at pos.
func (s *Scene) AddLayer(shape core.Shape, pos core.Vec2, color core.Color) LayerID {
	id := LayerID(len(s.layers))
	s.layers = append(s.layers, Layer{
		Shape:    shape,
		Previous: pos,
		Current:  pos,
		Next:     pos,
		Color:    color,
	})
	s.order = append(s.order, id)
	return id
}

// AddMover registers a velocity for an existing layer.
func (s *Scene) AddMover(layer LayerID, velocity core.Vec2) MoverID {
	id := MoverID(len(s.movers))
	s.movers = append(s.movers, MovingLayer{Layer: layer, Velocity: velocity})
	return id
}

// Layer returns the layer with the given id. The pointer stays valid for
// the life of the scene because layers are never removed.
func (s *Scene) Layer(id LayerID) *Layer {
	return &s.layers[id]
}

// Mover returns the moving-layer entry with the given id.
func (s *Scene) Mover(id MoverID) *MovingLayer {
	return &s.movers[id]
}

// Movers returns the ids of every moving-layer entry in registration order.
func (s *Scene) Movers() []MoverID {
	ids := make([]MoverID, len(s.movers))
	for i := range s.movers {
		ids[i] = MoverID(i)
	}
	return ids
}

// Order returns a copy of the painter's order.
func (s *Scene) Order() []LayerID {
	out := make([]LayerID, len(s.order))
	copy(out, s.order)
	return out
}

// Background returns the color of pixels no layer covers.
func (s *Scene) Background() core.Color {
	return s.background
}

// Lock enters the scene's critical section. Physics steps and input
// advances run inside it so a swap never observes a half-written Next.
func (s *Scene) Lock() {
	s.mu.Lock()
}

// Unlock leaves the critical section.
func (s *Scene) Unlock() {
	s.mu.Unlock()
}

// Swap shifts the position slots of the layers behind the given movers:
// Previous takes Current and Current takes Next. A layer referenced by
// more than one mover is swapped once.
func (s *Scene) Swap(movers ...MoverID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var done []LayerID
	for _, m := range movers {
		id := s.movers[m].Layer
		if containsLayer(done, id) {
			continue
		}
		done = append(done, id)

		l := &s.layers[id]
		l.Previous = l.Current
		l.Current = l.Next
	}
}

func containsLayer(ids []LayerID, id LayerID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Probe returns the color of the first layer in painter's order whose shape
// covers p at its current position, or the background color.
func (s *Scene) Probe(p core.Vec2) core.Color {
	for _, id := range s.order {
		l := &s.layers[id]
		if l.Shape.Contains(l.Current, p) {
			return l.Color
		}
	}
	return s.background
}

// Bounds returns the box of a layer at its current position.
func (s *Scene) Bounds(id LayerID) core.Region {
	l := &s.layers[id]
	return l.Shape.Bounds(l.Current)
}

// DamageBounds returns the region a redraw must repaint for a layer: the
// union of its previous and current boxes.
func (s *Scene) DamageBounds(id LayerID) core.Region {
	l := &s.layers[id]
	return l.Shape.Bounds(l.Previous).Union(l.Shape.Bounds(l.Current))
}
