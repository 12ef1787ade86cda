package hal

import (
	"sync"
	"time"

	"github.com/vovakirdan/lcd-pong/internal/core"
)

// KeyLatch turns discrete key presses into held-button state. Terminals
// report presses and auto-repeats but not releases, so a button counts as
// held for a fixed window after its last press.
type KeyLatch struct {
	hold time.Duration
	now  func() time.Time

	mu   sync.Mutex
	last [len(core.AllButtons)]time.Time
}

// NewKeyLatch creates a latch holding each press for the given duration.
func NewKeyLatch(hold time.Duration) *KeyLatch {
	return &KeyLatch{hold: hold, now: time.Now}
}

// Press records a press of b.
func (k *KeyLatch) Press(b core.Button) {
	if int(b) >= len(k.last) {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.last[b] = k.now()
}

// Release forgets any pending hold of b.
func (k *KeyLatch) Release(b core.Button) {
	if int(b) >= len(k.last) {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.last[b] = time.Time{}
}

// Pressed implements Buttons.
func (k *KeyLatch) Pressed() core.ButtonSet {
	k.mu.Lock()
	defer k.mu.Unlock()

	var s core.ButtonSet
	now := k.now()
	for _, b := range core.AllButtons {
		t := k.last[b]
		if !t.IsZero() && now.Sub(t) < k.hold {
			s.Set(b)
		}
	}
	return s
}
