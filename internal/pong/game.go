// Package pong runs a two-player Pong match on the LCD core. A periodic
// tick advances the ball and marks the screen dirty; the main loop redraws
// whatever moved and applies held paddle buttons.
package pong

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/hal"
	"github.com/vovakirdan/lcd-pong/internal/logging"
	"github.com/vovakirdan/lcd-pong/internal/physics"
	"github.com/vovakirdan/lcd-pong/internal/render"
	"github.com/vovakirdan/lcd-pong/internal/scene"
)

// Hardware bundles the collaborators a match runs on. Nil fields get
// defaults: an in-memory framebuffer, no buttons, no sound and a periodic
// ticker at the configured rate.
type Hardware struct {
	Display hal.Display
	Buttons hal.Buttons
	Tone    hal.Tone
	Ticker  hal.Ticker
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithFrameHook registers a function called on the main loop after every
// redraw pass.
func WithFrameHook(fn func()) Option {
	return func(g *Game) {
		g.onFrame = fn
	}
}

// Game is the state of one match. It lives for the whole process: there is
// no reset.
type Game struct {
	settings Settings
	hw       Hardware
	log      *log.Logger
	onFrame  func()

	pong   *scene.Pong
	engine *render.Engine
	fence  core.Region
	wrap   int

	// Owned by the tick callback.
	score  physics.Score
	ticks  int
	toneOn bool

	// Published to the main loop and presentation.
	scoreLeft  atomic.Int32
	scoreRight atomic.Int32
	state      atomic.Int32
	dirty      atomic.Bool
	steps      atomic.Int64
	wake       chan struct{}
}

// New creates a match. The scene is built but nothing is drawn until Start.
func New(settings Settings, hw Hardware, opts ...Option) *Game {
	rt := settings.Runtime
	if hw.Display == nil {
		hw.Display = core.NewFramebuffer(rt.ScreenW, rt.ScreenH)
	}
	if hw.Buttons == nil {
		hw.Buttons = hal.NoButtons{}
	}
	if hw.Tone == nil {
		hw.Tone = hal.Silent{}
	}
	if hw.Ticker == nil {
		hw.Ticker = hal.NewPeriodic(rt.TickRate)
	}

	g := &Game{
		settings: settings,
		hw:       hw,
		log:      logging.Discard(),
		pong:     scene.NewPong(rt.ScreenW, rt.ScreenH, settings.Palette),
		engine:   render.NewEngine(hw.Display, rt.Screen()),
		wrap:     settings.WrapOffset(),
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.dirty.Store(true)
	return g
}

// Scene returns the match scene.
func (g *Game) Scene() *scene.Pong {
	return g.pong
}

// Settings returns the match settings.
func (g *Game) Settings() Settings {
	return g.settings
}

// State returns the current match state.
func (g *Game) State() MatchState {
	return MatchState(g.state.Load())
}

// Score returns the published scores.
func (g *Game) Score() physics.Score {
	return physics.Score{
		Left:  int(g.scoreLeft.Load()),
		Right: int(g.scoreRight.Load()),
	}
}

// Dirty returns true while a redraw is pending.
func (g *Game) Dirty() bool {
	return g.dirty.Load()
}

// Wake returns a channel that receives after each physics step.
func (g *Game) Wake() <-chan struct{} {
	return g.wake
}

// Init paints the whole screen and derives the playfield fence.
func (g *Game) Init() {
	g.engine.DrawAll(g.pong.Scene)
	g.fence = g.pong.FieldFence()
	g.log.Info("match started",
		"screen", g.settings.Runtime.Screen(),
		"tick_rate", g.settings.Runtime.TickRate,
		"physics_every", g.settings.Runtime.PhysicsEvery)
}

// Start initialises the match and arms the periodic tick.
func (g *Game) Start(ctx context.Context) {
	g.Init()
	g.hw.Ticker.Start(ctx, g.Tick)
}

// Run plays the match until it ends or ctx is done. It returns nil when a
// player wins and ctx.Err() on cancellation.
func (g *Game) Run(ctx context.Context) error {
	g.Start(ctx)
	defer g.hw.Tone.SetTonePeriod(0)
	defer g.hw.Ticker.Stop()

	for {
		g.Service()
		if g.State().Terminal() {
			return nil
		}

		select {
		case <-ctx.Done():
			g.log.Info("match abandoned", "left", g.scoreLeft.Load(), "right", g.scoreRight.Load())
			return ctx.Err()
		case <-g.wake:
		}
	}
}

// Tick is the periodic interrupt callback. Physics runs on every Nth call;
// nothing runs once the match is over.
func (g *Game) Tick() {
	if g.State() != Playing {
		return
	}

	g.ticks++
	if g.ticks < g.settings.Runtime.PhysicsEvery {
		return
	}
	g.ticks = 0

	p := g.pong
	p.Lock()
	c := physics.AdvanceWithCollision(p.Scene, p.BallMover, p.LeftDown, p.RightDown, g.fence, &g.score)
	p.Unlock()
	g.steps.Add(1)

	if c.Any() {
		g.log.Debug("contact", "wall", c.Wall, "goal", c.Goal, "paddle", c.Paddle)
	}
	if c.Goal != physics.SideNone {
		g.log.Info("goal", "line", c.Goal, "left", g.score.Left, "right", g.score.Right)
	}
	g.scoreLeft.Store(int32(g.score.Left))
	g.scoreRight.Store(int32(g.score.Right))

	g.sound(c)
	g.evaluate()

	g.dirty.Store(true)
	select {
	case g.wake <- struct{}{}:
	default:
	}
}

// sound plays the cue for a contact and silences the previous cue on the
// next step without one.
func (g *Game) sound(c physics.Contact) {
	period := 0
	switch {
	case c.Paddle != physics.SideNone:
		period = g.settings.PaddleTone
	case c.Wall:
		period = g.settings.WallTone
	}

	if period == 0 && !g.toneOn {
		return
	}
	g.hw.Tone.SetTonePeriod(period)
	g.toneOn = period != 0
}

// evaluate maps both scores to glyphs and ends the match on the first one
// that has none.
func (g *Game) evaluate() {
	var next MatchState
	if _, ok := ScoreGlyph(g.score.Left); !ok {
		next = PlayerOneWon
	} else if _, ok := ScoreGlyph(g.score.Right); !ok {
		next = PlayerTwoWon
	} else {
		return
	}

	g.state.Store(int32(next))
	g.hw.Ticker.Stop()
	g.log.Info("match over", "result", next, "left", g.score.Left, "right", g.score.Right)
}

// Service runs one main loop iteration if a redraw is pending: redraw the
// ball, then move the paddles whose buttons are held. It returns false when
// there was nothing to do.
func (g *Game) Service() bool {
	if !g.dirty.CompareAndSwap(true, false) {
		return false
	}

	g.engine.Redraw(g.pong.Scene, g.pong.BallMover)
	g.handleInput()

	if g.onFrame != nil {
		g.onFrame()
	}
	return true
}

// handleInput moves each held paddle: redraw its layer, then advance it
// with wraparound inside the playfield. Buttons are evaluated in order and
// each advances on its own, so opposite directions held together cancel.
func (g *Game) handleInput() {
	pressed := g.hw.Buttons.Pressed()
	for _, b := range core.AllButtons {
		if !pressed.Has(b) {
			continue
		}

		m := g.pong.ButtonMover(b)
		g.engine.Redraw(g.pong.Scene, m)

		g.pong.Lock()
		physics.AdvanceWithWrap(g.pong.Scene, []scene.MoverID{m}, g.fence, g.wrap)
		g.pong.Unlock()
	}
}

// Snapshot returns a consistent view of the match.
func (g *Game) Snapshot() Snapshot {
	p := g.pong
	p.Lock()
	defer p.Unlock()

	return Snapshot{
		Score:        g.Score(),
		State:        g.State(),
		Ball:         p.Layer(p.Ball).Current,
		BallVelocity: p.Mover(p.BallMover).Velocity,
		LeftPaddle:   p.Layer(p.LeftPaddle).Current,
		RightPaddle:  p.Layer(p.RightPaddle).Current,
		Steps:        g.steps.Load(),
	}
}
