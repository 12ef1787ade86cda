package scene

import (
	"testing"

	"github.com/vovakirdan/lcd-pong/internal/core"
)

func TestAddLayerInitialisesPositions(t *testing.T) {
	sc := New(core.ColorBlack)
	id := sc.AddLayer(core.SolidRect(2, 2), core.V(10, 20), core.ColorRed)

	l := sc.Layer(id)
	if l.Previous != core.V(10, 20) || l.Current != core.V(10, 20) || l.Next != core.V(10, 20) {
		t.Errorf("positions = %v/%v/%v, expected all (10, 20)", l.Previous, l.Current, l.Next)
	}
	if got := sc.Order(); len(got) != 1 || got[0] != id {
		t.Errorf("Order() = %v, expected [%d]", got, id)
	}
}

func TestSwap(t *testing.T) {
	sc := New(core.ColorBlack)
	id := sc.AddLayer(core.SolidRect(1, 1), core.V(5, 5), core.ColorWhite)
	m := sc.AddMover(id, core.V(1, 0))

	sc.Layer(id).Next = core.V(6, 5)
	sc.Swap(m)

	l := sc.Layer(id)
	if l.Previous != core.V(5, 5) {
		t.Errorf("Previous = %v, expected (5, 5)", l.Previous)
	}
	if l.Current != core.V(6, 5) {
		t.Errorf("Current = %v, expected (6, 5)", l.Current)
	}
	if l.Next != core.V(6, 5) {
		t.Errorf("Next = %v, expected (6, 5)", l.Next)
	}
}

func TestSwapSharedLayerOnce(t *testing.T) {
	sc := New(core.ColorBlack)
	id := sc.AddLayer(core.SolidRect(1, 1), core.V(5, 5), core.ColorWhite)
	up := sc.AddMover(id, core.V(0, -1))
	down := sc.AddMover(id, core.V(0, 1))

	sc.Layer(id).Next = core.V(5, 7)
	sc.Swap(up, down)

	// A second swap for the same layer would have copied Current into
	// Previous again.
	if got := sc.Layer(id).Previous; got != core.V(5, 5) {
		t.Errorf("Previous = %v, expected (5, 5)", got)
	}
}

func TestProbePainterOrder(t *testing.T) {
	sc := New(core.ColorBlue)
	sc.AddLayer(core.SolidRect(1, 1), core.V(5, 5), core.ColorRed)
	sc.AddLayer(core.SolidRect(3, 3), core.V(5, 5), core.ColorGreen)

	tests := []struct {
		name     string
		p        core.Vec2
		expected core.Color
	}{
		{"first layer wins", core.V(5, 5), core.ColorRed},
		{"second layer below", core.V(2, 2), core.ColorGreen},
		{"background", core.V(20, 20), core.ColorBlue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sc.Probe(tc.p); got != tc.expected {
				t.Errorf("Probe(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestProbeUsesCurrentPosition(t *testing.T) {
	sc := New(core.ColorBlack)
	id := sc.AddLayer(core.SolidRect(0, 0), core.V(3, 3), core.ColorWhite)

	sc.Layer(id).Next = core.V(8, 8)

	if sc.Probe(core.V(8, 8)) != core.ColorBlack {
		t.Error("Probe() should ignore the pending position")
	}
	if sc.Probe(core.V(3, 3)) != core.ColorWhite {
		t.Error("Probe() should draw the current position")
	}
}

func TestDamageBounds(t *testing.T) {
	sc := New(core.ColorBlack)
	id := sc.AddLayer(core.SolidRect(4, 4), core.V(64, 80), core.ColorWhite)
	m := sc.AddMover(id, core.V(-1, 1))

	sc.Layer(id).Next = core.V(63, 81)
	sc.Swap(m)

	got := sc.DamageBounds(id)
	expected := core.NewRegion(core.V(59, 76), core.V(68, 85))
	if got != expected {
		t.Errorf("DamageBounds() = %+v, expected %+v", got, expected)
	}
}

func TestNewPongGeometry(t *testing.T) {
	p := NewPong(128, 160, DefaultPalette())

	tests := []struct {
		name     string
		layer    LayerID
		expected core.Region
	}{
		{"ball", p.Ball, core.NewRegion(core.V(60, 76), core.V(68, 84))},
		{"field", p.Field, core.NewRegion(core.V(0, 1), core.V(126, 159))},
		{"left paddle", p.LeftPaddle, core.NewRegion(core.V(4, 69), core.V(6, 91))},
		{"right paddle", p.RightPaddle, core.NewRegion(core.V(120, 69), core.V(122, 91))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Bounds(tc.layer); got != tc.expected {
				t.Errorf("Bounds() = %+v, expected %+v", got, tc.expected)
			}
		})
	}

	order := p.Order()
	expectedOrder := []LayerID{p.Ball, p.Field, p.RightPaddle, p.LeftPaddle}
	for i := range expectedOrder {
		if order[i] != expectedOrder[i] {
			t.Fatalf("Order() = %v, expected %v", order, expectedOrder)
		}
	}

	if p.FieldFence() != core.NewRegion(core.V(0, 1), core.V(126, 159)) {
		t.Errorf("FieldFence() = %+v", p.FieldFence())
	}
	if p.Mover(p.BallMover).Velocity != BallVelocity {
		t.Errorf("ball velocity = %v, expected %v", p.Mover(p.BallMover).Velocity, BallVelocity)
	}
}

func TestMaxWrapOffset(t *testing.T) {
	tests := []struct {
		w, h     int
		expected int
	}{
		{128, 160, 137},
		{32, 32, 9},
		{160, 128, 105},
	}

	for _, tc := range tests {
		if got := FieldBounds(tc.w, tc.h); got != NewPong(tc.w, tc.h, DefaultPalette()).FieldFence() {
			t.Errorf("FieldBounds(%d, %d) = %+v, expected the scene's fence", tc.w, tc.h, got)
		}
		if got := MaxWrapOffset(tc.w, tc.h); got != tc.expected {
			t.Errorf("MaxWrapOffset(%d, %d) = %d, expected %d", tc.w, tc.h, got, tc.expected)
		}
	}
}

func TestButtonMover(t *testing.T) {
	p := NewPong(128, 160, DefaultPalette())

	tests := []struct {
		button   core.Button
		expected MoverID
	}{
		{core.ButtonLeftUp, p.LeftUp},
		{core.ButtonLeftDown, p.LeftDown},
		{core.ButtonRightUp, p.RightUp},
		{core.ButtonRightDown, p.RightDown},
	}

	for _, tc := range tests {
		if got := p.ButtonMover(tc.button); got != tc.expected {
			t.Errorf("ButtonMover(%v) = %d, expected %d", tc.button, got, tc.expected)
		}
	}
}
