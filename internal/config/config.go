// Package config provides YAML and TOML configuration loading for the LCD
// Pong console.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/scene"
)

// Config contains every tunable of the console. Game rules (win score,
// paddle slack, velocities) are fixed and not part of it.
type Config struct {
	Screen ScreenConfig `yaml:"screen" toml:"screen"`
	Timing TimingConfig `yaml:"timing" toml:"timing"`
	Field  FieldConfig  `yaml:"field" toml:"field"`
	Tone   ToneConfig   `yaml:"tone" toml:"tone"`
	Colors ColorsConfig `yaml:"colors" toml:"colors"`
	Input  InputConfig  `yaml:"input" toml:"input"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// ScreenConfig defines the LCD dimensions.
type ScreenConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// TimingConfig defines the periodic tick.
type TimingConfig struct {
	TickRate     int `yaml:"tick_rate" toml:"tick_rate"`         // ticks per second
	PhysicsEvery int `yaml:"physics_every" toml:"physics_every"` // physics runs on every Nth tick
}

// FieldConfig defines playfield behaviour.
type FieldConfig struct {
	WrapMargin int `yaml:"wrap_margin" toml:"wrap_margin"` // wrap offset = screen height - margin
}

// ToneConfig defines the buzzer.
type ToneConfig struct {
	ClockHz      int     `yaml:"clock_hz" toml:"clock_hz"`
	WallPeriod   int     `yaml:"wall_period" toml:"wall_period"`
	PaddlePeriod int     `yaml:"paddle_period" toml:"paddle_period"`
	Volume       float64 `yaml:"volume" toml:"volume"` // log2 gain
	Muted        bool    `yaml:"muted" toml:"muted"`
}

// ColorsConfig names the palette entries used for each layer.
type ColorsConfig struct {
	Background string `yaml:"background" toml:"background"`
	Ball       string `yaml:"ball" toml:"ball"`
	Paddle     string `yaml:"paddle" toml:"paddle"`
	Field      string `yaml:"field" toml:"field"`
}

// InputConfig defines keyboard handling.
type InputConfig struct {
	// HoldMS is how long a key press counts as held. Terminals report a
	// held key as one press, a pause of up to the key-repeat delay, then
	// repeats, so a window shorter than that delay drops the key for a
	// moment. Longer windows make a released key stop later.
	HoldMS int `yaml:"hold_ms" toml:"hold_ms"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// Minimum screen that fits the fixed paddles and ball.
const (
	MinScreenWidth  = 32
	MinScreenHeight = 32
)

// MaxTickRate bounds timing.tick_rate so the tick interval stays a usable
// timer period.
const MaxTickRate = 1000

// Runtime returns the core parameters of the configuration.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:      c.Screen.Width,
		ScreenH:      c.Screen.Height,
		TickRate:     c.Timing.TickRate,
		PhysicsEvery: c.Timing.PhysicsEvery,
	}
}

// WrapOffset returns the distance a wrapping paddle is shifted.
func (c Config) WrapOffset() int {
	return c.Screen.Height - c.Field.WrapMargin
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var errs []error

	if c.Screen.Width < MinScreenWidth || c.Screen.Height < MinScreenHeight {
		errs = append(errs, fmt.Errorf("screen %dx%d is smaller than %dx%d",
			c.Screen.Width, c.Screen.Height, MinScreenWidth, MinScreenHeight))
	}
	if c.Timing.TickRate <= 0 || c.Timing.TickRate > MaxTickRate {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be in 1..%d, got %d", MaxTickRate, c.Timing.TickRate))
	}
	if c.Timing.PhysicsEvery <= 0 {
		errs = append(errs, fmt.Errorf("timing.physics_every must be positive, got %d", c.Timing.PhysicsEvery))
	}
	if c.WrapOffset() <= 0 {
		errs = append(errs, fmt.Errorf("field.wrap_margin %d leaves no wrap distance", c.Field.WrapMargin))
	} else if maxWrap := scene.MaxWrapOffset(c.Screen.Width, c.Screen.Height); c.WrapOffset() > maxWrap {
		errs = append(errs, fmt.Errorf("field.wrap_margin %d lets a wrapped paddle leave the field (minimum %d)",
			c.Field.WrapMargin, c.Screen.Height-maxWrap))
	}
	switch {
	case c.Tone.WallPeriod < 0 || c.Tone.PaddlePeriod < 0:
		errs = append(errs, errors.New("tone periods must not be negative"))
	case c.Tone.Muted:
	case c.Tone.WallPeriod == 0 || c.Tone.PaddlePeriod == 0:
		errs = append(errs, errors.New("tone periods must be nonzero unless tone.muted is set"))
	case c.Tone.WallPeriod == c.Tone.PaddlePeriod:
		errs = append(errs, fmt.Errorf("tone periods must differ unless tone.muted is set, both are %d", c.Tone.WallPeriod))
	}
	if c.Input.HoldMS <= 0 {
		errs = append(errs, fmt.Errorf("input.hold_ms must be positive, got %d", c.Input.HoldMS))
	}

	for _, entry := range []struct{ key, name string }{
		{"colors.background", c.Colors.Background},
		{"colors.ball", c.Colors.Ball},
		{"colors.paddle", c.Colors.Paddle},
		{"colors.field", c.Colors.Field},
	} {
		if _, err := core.ParseColor(entry.name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.key, err))
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error", "fatal":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	return errors.Join(errs...)
}
