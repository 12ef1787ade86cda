package pong

import (
	"fmt"

	"github.com/vovakirdan/lcd-pong/internal/config"
	"github.com/vovakirdan/lcd-pong/internal/core"
	"github.com/vovakirdan/lcd-pong/internal/scene"
)

// Settings are the fixed parameters of a match.
type Settings struct {
	Runtime    core.RuntimeConfig
	Palette    scene.Palette
	WrapMargin int // paddles wrap by Runtime.ScreenH - WrapMargin
	WallTone   int // tone period on wall and goal hits
	PaddleTone int // tone period on paddle hits
}

// DefaultSettings returns the settings of the reference console.
func DefaultSettings() Settings {
	s, err := SettingsFromConfig(config.Default())
	if err != nil {
		panic(fmt.Sprintf("pong: default config is invalid: %v", err))
	}
	return s
}

// SettingsFromConfig converts a loaded configuration.
func SettingsFromConfig(cfg config.Config) (Settings, error) {
	var (
		palette scene.Palette
		err     error
	)
	for _, c := range []struct {
		dst  *core.Color
		name string
	}{
		{&palette.Background, cfg.Colors.Background},
		{&palette.Ball, cfg.Colors.Ball},
		{&palette.Paddle, cfg.Colors.Paddle},
		{&palette.Field, cfg.Colors.Field},
	} {
		if *c.dst, err = core.ParseColor(c.name); err != nil {
			return Settings{}, fmt.Errorf("pong: %w", err)
		}
	}

	return Settings{
		Runtime:    cfg.Runtime(),
		Palette:    palette,
		WrapMargin: cfg.Field.WrapMargin,
		WallTone:   cfg.Tone.WallPeriod,
		PaddleTone: cfg.Tone.PaddlePeriod,
	}, nil
}

// WrapOffset returns the paddle wrap distance.
func (s Settings) WrapOffset() int {
	return s.Runtime.ScreenH - s.WrapMargin
}
