// lcdpong is a two-player Pong console that renders a 128x160 LCD in the
// terminal.
//
// Usage:
//
//	lcdpong play               - Play a match
//	lcdpong simulate           - Run a headless match and print the result
//	lcdpong backends           - List presentation backends
//	lcdpong config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (.yaml, .yml or .toml)
//	--log-file <path>   - Write logs to a file (default: no logs)
//	--log-level <name>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lcd-pong/internal/config"
	"github.com/vovakirdan/lcd-pong/internal/logging"

	// Import backends to register them
	_ "github.com/vovakirdan/lcd-pong/internal/platform/direct"
	_ "github.com/vovakirdan/lcd-pong/internal/platform/tui"
)

var (
	// Global flags
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lcdpong",
	Short: "LCD Pong - two-player Pong on a simulated LCD",
	Long: `LCD Pong plays two-player Pong on a 128x160 pixel LCD drawn in your
terminal. The first player to reach 10 points wins.

Available commands:
  play      - Play a match
  simulate  - Run a headless match and print the result
  backends  - Show all presentation backends
  config    - Print the effective configuration

Examples:
  lcdpong play
  lcdpong play --backend direct --mute
  lcdpong simulate --ticks 600 --hold left-up --bmp frame.bmp
  lcdpong config --format toml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and builds the logger. The closer releases
// the log file.
func setup() (config.Config, *log.Logger, io.Closer, error) {
	cfg, source, err := config.Resolve(flagConfig)
	if err != nil {
		return cfg, nil, nil, err
	}

	opts := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	if flagLogLevel != "" {
		opts.Level = flagLogLevel
	}
	if flagLogFile != "" {
		opts.File = flagLogFile
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return cfg, nil, nil, err
	}

	logger.Debug("config loaded", "source", source)
	return cfg, logger, closer, nil
}

// screenshotDir returns where captured frames go.
func screenshotDir() string {
	if dir := config.UserDir(); dir != "" {
		return filepath.Join(dir, "screenshots")
	}
	return "screenshots"
}
