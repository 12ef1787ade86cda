package hal

import (
	"context"
	"sync"
	"time"
)

// Periodic is a Ticker driven by a time.Ticker goroutine. The callback runs
// on that goroutine, one invocation at a time.
type Periodic struct {
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// NewPeriodic creates a ticker firing rate times per second. Rates past
// the clock resolution fire every nanosecond.
func NewPeriodic(rate int) *Periodic {
	if rate <= 0 {
		rate = 1
	}
	interval := time.Second / time.Duration(rate)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &Periodic{interval: interval}
}

// Interval returns the time between ticks.
func (p *Periodic) Interval() time.Duration {
	return p.interval
}

// Start begins ticking. It returns immediately. Ticking ends when ctx is
// done or Stop is called. Starting a stopped ticker has no effect.
func (p *Periodic) Start(ctx context.Context, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go p.loop(ctx, fn, p.stop, p.done)
}

func (p *Periodic) loop(ctx context.Context, fn func(), stop, done chan struct{}) {
	defer close(done)

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-t.C:
			// A Stop issued by the previous callback wins over a pending tick.
			select {
			case <-stop:
				return
			default:
			}
			fn()
		}
	}
}

// Stop halts the ticker. It is safe to call more than once, before Start,
// and from inside the callback.
func (p *Periodic) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	if p.stop != nil {
		close(p.stop)
	}
}

// Done returns a channel closed once the tick goroutine has exited. It is
// nil if the ticker was never started.
func (p *Periodic) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Manual is a Ticker fired explicitly with Fire. It suits headless runs
// and tests where time must not pass on its own.
type Manual struct {
	mu      sync.Mutex
	fn      func()
	stopped bool
}

// Start records the callback. ctx is not observed; Fire after Stop is a
// no-op.
func (m *Manual) Start(_ context.Context, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
}

// Stop disarms the ticker.
func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

// Stopped returns true once Stop was called.
func (m *Manual) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// Fire invokes the callback n times and returns how many ran.
func (m *Manual) Fire(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		m.mu.Lock()
		fn, stopped := m.fn, m.stopped
		m.mu.Unlock()
		if fn == nil || stopped {
			break
		}
		fn()
		ran++
	}
	return ran
}
