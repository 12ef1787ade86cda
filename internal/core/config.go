package core

// RuntimeConfig contains the fixed parameters the core is built around.
type RuntimeConfig struct {
	ScreenW      int // Screen width in pixels
	ScreenH      int // Screen height in pixels
	TickRate     int // Periodic interrupt rate in Hz
	PhysicsEvery int // Physics runs on every Nth tick
}

// DefaultConfig returns the values of the reference hardware: a 128x160 LCD
// and a 15 Hz watchdog tick with physics on every 5th tick.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      128,
		ScreenH:      160,
		TickRate:     15,
		PhysicsEvery: 5,
	}
}

// Screen returns the region covering every pixel of the display.
func (c RuntimeConfig) Screen() Region {
	return NewRegion(V(0, 0), V(c.ScreenW-1, c.ScreenH-1))
}
