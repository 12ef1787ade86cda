package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// SourceEmbedded and SourceBuiltin name configurations that did not come
// from a file.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// searchNames are the file names tried in each config directory.
var searchNames = []string{"pong.yaml", "pong.yml", "pong.toml"}

// FormatFor picks the syntax from a file extension. Anything that is not
// .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown config format %q", name)
	}
}

// Decode parses data over cfg. Keys missing from data keep their value.
func Decode(data []byte, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return err
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes cfg in the given syntax.
func Encode(w io.Writer, cfg Config, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
}

// Load loads the configuration.
// Search order: customPath -> ~/.lcdpong/pong.{yaml,yml,toml} ->
// ./configs/pong.{yaml,yml,toml} -> embedded default -> Default()
func Load(customPath string) (Config, error) {
	cfg, _, err := Resolve(customPath)
	return cfg, err
}

// Resolve is Load that also reports where the configuration came from: a
// file path, SourceEmbedded or SourceBuiltin.
func Resolve(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, customPath, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory. Unreadable
	// or invalid files are skipped.
	for _, dir := range searchDirs() {
		for _, name := range searchNames {
			path := filepath.Join(dir, name)
			cfg, err := loadFile(path)
			if err != nil || cfg.Validate() != nil {
				continue
			}
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg := Default()
	if err := Decode(defaultPongYAML, FormatYAML, &cfg); err != nil || cfg.Validate() != nil {
		return Default(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

func loadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(data, FormatFor(path), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// searchDirs lists the implicit config directories in priority order.
func searchDirs() []string {
	var dirs []string
	if dir := UserDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	return append(dirs, "configs")
}

// UserDir returns ~/.lcdpong, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lcdpong")
}
