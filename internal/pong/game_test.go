package pong

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/lcd-pong/internal/config"
	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/hal"
	"github.com/vovakirdan/lcd-pong/internal/physics"
	"github.com/vovakirdan/lcd-pong/internal/scene"
)

// toneRecorder records every period requested.
type toneRecorder struct {
	mu      sync.Mutex
	periods []int
}

func (r *toneRecorder) SetTonePeriod(period int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods = append(r.periods, period)
}

func (r *toneRecorder) calls() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.periods))
	copy(out, r.periods)
	return out
}

type testRig struct {
	game   *Game
	fb     *core.Framebuffer
	tone   *toneRecorder
	ticker *hal.Manual
	held   core.ButtonSet
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	return newRigWith(t, DefaultSettings())
}

func newRigWith(t *testing.T, s Settings) *testRig {
	t.Helper()
	r := &testRig{
		fb:     core.NewFramebuffer(s.Runtime.ScreenW, s.Runtime.ScreenH),
		tone:   &toneRecorder{},
		ticker: &hal.Manual{},
	}
	r.game = New(s, Hardware{
		Display: r.fb,
		Buttons: hal.ButtonFunc(func() core.ButtonSet { return r.held }),
		Tone:    r.tone,
		Ticker:  r.ticker,
	})
	return r
}

// step runs one physics step worth of ticks.
func (r *testRig) step() {
	for i := 0; i < r.game.settings.Runtime.PhysicsEvery; i++ {
		r.game.Tick()
	}
}

func (r *testRig) place(id scene.LayerID, pos core.Vec2) {
	l := r.game.pong.Layer(id)
	l.Previous, l.Current, l.Next = pos, pos, pos
}

func (r *testRig) serve(pos, velocity core.Vec2) {
	r.place(r.game.pong.Ball, pos)
	r.game.pong.Mover(r.game.pong.BallMover).Velocity = velocity
}

func TestTickGatesPhysics(t *testing.T) {
	r := newRig(t)
	r.game.Init()
	ball := r.game.pong.Layer(r.game.pong.Ball)

	for i := 1; i < 5; i++ {
		r.game.Tick()
		if ball.Next != core.V(64, 80) {
			t.Fatalf("tick %d moved the ball to %v", i, ball.Next)
		}
	}

	r.game.Tick()
	if ball.Next != core.V(63, 81) {
		t.Errorf("Next after 5 ticks = %v, expected (63, 81)", ball.Next)
	}
	if got := r.game.Snapshot().Steps; got != 1 {
		t.Errorf("Steps = %d, expected 1", got)
	}
	if !r.game.Dirty() {
		t.Error("physics step should mark the screen dirty")
	}
	select {
	case <-r.game.Wake():
	default:
		t.Error("physics step should wake the main loop")
	}
}

func TestServiceRedrawsBall(t *testing.T) {
	r := newRig(t)
	r.game.Init()

	if r.fb.Get(64, 80) != core.ColorWhite {
		t.Fatal("Init() should paint the ball")
	}

	// The first pass is pending from startup and moves nothing.
	if !r.game.Service() {
		t.Error("first Service() should run")
	}
	if r.game.Service() {
		t.Error("Service() without a pending redraw should do nothing")
	}

	r.step()
	if !r.game.Service() {
		t.Fatal("Service() after a physics step should run")
	}

	if got := r.game.Snapshot().Ball; got != core.V(63, 81) {
		t.Errorf("Ball = %v, expected (63, 81)", got)
	}
	if r.fb.Get(68, 76) != core.ColorBlack {
		t.Error("vacated pixel should be repainted with the background")
	}
	if r.fb.Get(59, 85) != core.ColorWhite {
		t.Error("new ball pixel should be painted")
	}
}

func TestGoalScoresAndSounds(t *testing.T) {
	r := newRig(t)
	r.game.Init()
	r.serve(core.V(4, 30), core.V(-1, 0))

	r.step()

	if got := r.game.Score(); got != (physics.Score{Right: 1}) {
		t.Errorf("Score() = %+v, expected right 1", got)
	}
	if r.game.State() != Playing {
		t.Errorf("State() = %v, expected playing", r.game.State())
	}

	// The cue is silenced on the next step without contact.
	r.step()
	r.step()

	tone := r.game.settings.WallTone
	got := r.tone.calls()
	if len(got) != 2 || got[0] != tone || got[1] != 0 {
		t.Errorf("tone periods = %v, expected [%d 0]", got, tone)
	}
}

func TestPaddleHitSounds(t *testing.T) {
	r := newRig(t)
	r.game.Init()
	r.serve(core.V(11, 80), core.V(-1, 0))

	r.step()

	got := r.tone.calls()
	if len(got) != 1 || got[0] != r.game.settings.PaddleTone {
		t.Errorf("tone periods = %v, expected [%d]", got, r.game.settings.PaddleTone)
	}
	if v := r.game.Snapshot().BallVelocity; v != core.V(1, 0) {
		t.Errorf("BallVelocity = %v, expected (1, 0)", v)
	}
	if r.game.Score() != (physics.Score{}) {
		t.Errorf("Score() = %+v, expected zero", r.game.Score())
	}
}

func TestWinStopsPhysics(t *testing.T) {
	tests := []struct {
		name     string
		score    physics.Score
		pos      core.Vec2
		velocity core.Vec2
		expected MatchState
	}{
		{"left reaches ten", physics.Score{Left: 9}, core.V(123, 30), core.V(1, 0), PlayerOneWon},
		{"right reaches ten", physics.Score{Right: 9}, core.V(4, 30), core.V(-1, 0), PlayerTwoWon},
		{"score already at ten", physics.Score{Right: WinScore}, core.V(64, 80), core.V(-1, 1), PlayerTwoWon},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t)
			r.game.Start(context.Background())
			r.game.score = tc.score
			r.serve(tc.pos, tc.velocity)

			r.step()

			if got := r.game.State(); got != tc.expected {
				t.Fatalf("State() = %v, expected %v", got, tc.expected)
			}
			if !r.ticker.Stopped() {
				t.Error("a won match should stop the ticker")
			}

			ball := r.game.pong.Layer(r.game.pong.Ball).Next
			steps := r.game.Snapshot().Steps
			for i := 0; i < 20; i++ {
				r.game.Tick()
			}
			if got := r.game.pong.Layer(r.game.pong.Ball).Next; got != ball {
				t.Errorf("ball moved after the match ended: %v -> %v", ball, got)
			}
			if got := r.game.Snapshot().Steps; got != steps {
				t.Errorf("Steps = %d after the match ended, expected %d", got, steps)
			}
		})
	}
}

func TestHeldButtonMovesPaddle(t *testing.T) {
	r := newRig(t)
	r.game.Init()
	r.held.Set(core.ButtonLeftUp)

	const k = 10
	for i := 0; i < k; i++ {
		r.game.dirty.Store(true)
		r.game.Service()
	}

	l := r.game.pong.Layer(r.game.pong.LeftPaddle)
	if l.Next != core.V(scene.LeftPaddleX, 80-k) {
		t.Errorf("Next = %v, expected (%d, %d)", l.Next, scene.LeftPaddleX, 80-k)
	}
	// The paddle is drawn before it is advanced.
	if l.Current != core.V(scene.LeftPaddleX, 80-k+1) {
		t.Errorf("Current = %v, expected (%d, %d)", l.Current, scene.LeftPaddleX, 80-k+1)
	}
	if r.fb.Get(scene.LeftPaddleX, 80-k+1-scene.PaddleHalfH) != core.ColorWhite {
		t.Error("paddle top should be painted at its new position")
	}

	right := r.game.pong.Layer(r.game.pong.RightPaddle)
	if right.Next != core.V(128-scene.RightPaddleInset, 80) {
		t.Errorf("right paddle moved to %v without input", right.Next)
	}
}

func TestHeldPaddleStaysInField(t *testing.T) {
	small := config.Default()
	small.Screen.Width, small.Screen.Height = 64, 48
	small.Field.WrapMargin = small.Screen.Height - scene.MaxWrapOffset(64, 48)

	configs := []struct {
		name string
		cfg  config.Config
	}{
		{"default", config.Default()},
		{"small screen at widest wrap", small},
	}

	for _, c := range configs {
		if err := c.cfg.Validate(); err != nil {
			t.Fatalf("%s: Validate() = %v", c.name, err)
		}
		settings, err := SettingsFromConfig(c.cfg)
		if err != nil {
			t.Fatalf("%s: SettingsFromConfig() failed: %v", c.name, err)
		}

		for _, b := range core.AllButtons {
			r := newRigWith(t, settings)
			r.game.Init()
			r.held = 0
			r.held.Set(b)
			fence := r.game.pong.FieldFence()

			for i := 0; i < 3*settings.Runtime.ScreenH; i++ {
				r.game.dirty.Store(true)
				r.game.Service()

				for _, id := range []scene.LayerID{r.game.pong.LeftPaddle, r.game.pong.RightPaddle} {
					l := r.game.pong.Layer(id)
					if box := l.Shape.Bounds(l.Next); !box.Within(fence) {
						t.Fatalf("%s, button %v: after %d passes paddle box %+v outside fence %+v",
							c.name, b, i+1, box, fence)
					}
				}
			}
		}
	}
}

func TestOppositeButtonsCancel(t *testing.T) {
	r := newRig(t)
	r.game.Init()
	r.held.Set(core.ButtonRightUp)
	r.held.Set(core.ButtonRightDown)

	for i := 0; i < 5; i++ {
		r.game.dirty.Store(true)
		r.game.Service()
	}

	if got := r.game.pong.Layer(r.game.pong.RightPaddle).Next; got != core.V(121, 80) {
		t.Errorf("Next = %v, expected (121, 80)", got)
	}
}

func TestRunUntilWin(t *testing.T) {
	r := newRig(t)
	r.game.score = physics.Score{Left: 9}
	r.serve(core.V(123, 30), core.V(1, 0))

	frames := 0
	r.game.onFrame = func() { frames++ }

	done := make(chan error, 1)
	go func() { done <- r.game.Run(context.Background()) }()

	deadline := time.Now().Add(5 * time.Second)
	for r.game.State() == Playing {
		if time.Now().After(deadline) {
			t.Fatal("match did not end")
		}
		r.ticker.Fire(1)
		time.Sleep(time.Millisecond)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v, expected nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after the win")
	}

	if frames == 0 {
		t.Error("frame hook never ran")
	}
	got := r.tone.calls()
	if len(got) == 0 || got[len(got)-1] != 0 {
		t.Errorf("tone periods = %v, expected silence on exit", got)
	}
	if snap := r.game.Snapshot(); snap.State.Banner() != "PLAYER 1 WINS" {
		t.Errorf("Banner() = %q", snap.State.Banner())
	}
}

func TestRunCancelled(t *testing.T) {
	r := newRig(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.game.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, expected context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() ignored cancellation")
	}
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Colors.Ball = "yellow"
	cfg.Field.WrapMargin = 30

	s, err := SettingsFromConfig(cfg)
	if err != nil {
		t.Fatalf("SettingsFromConfig() failed: %v", err)
	}
	if s.Palette.Ball != core.ColorYellow || s.Palette.Background != core.ColorBlack {
		t.Errorf("Palette = %+v", s.Palette)
	}
	if s.WrapOffset() != 130 {
		t.Errorf("WrapOffset() = %d, expected 130", s.WrapOffset())
	}
	if s.WallTone != 5000 || s.PaddleTone != 2500 {
		t.Errorf("tones = %d/%d", s.WallTone, s.PaddleTone)
	}

	cfg.Colors.Field = "plaid"
	if _, err := SettingsFromConfig(cfg); err == nil {
		t.Error("SettingsFromConfig() should reject unknown colors")
	}
}
