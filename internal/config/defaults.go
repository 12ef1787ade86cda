package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// Default returns the built-in configuration: the reference console's 128x160
// LCD ticking at 15 Hz with physics on every 5th tick.
func Default() Config {
	return Config{
		Screen: ScreenConfig{
			Width:  128,
			Height: 160,
		},
		Timing: TimingConfig{
			TickRate:     15,
			PhysicsEvery: 5,
		},
		Field: FieldConfig{
			WrapMargin: 23,
		},
		Tone: ToneConfig{
			ClockHz:      2000000,
			WallPeriod:   5000, // 400 Hz
			PaddlePeriod: 2500, // 800 Hz
			Volume:       -1.0,
		},
		Colors: ColorsConfig{
			Background: "black",
			Ball:       "white",
			Paddle:     "white",
			Field:      "white",
		},
		Input: InputConfig{
			HoldMS: 700,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPongYAML
}
