// Package registry keeps the presentation backends a match can be played
// on. Each backend package registers itself from init(), so the CLI picks
// one by name and only needs a blank import.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lcd-pong/internal/config"
	"github.com/vovakirdan/lcd-pong/internal/hal"
)

// Env is everything a backend needs to run a match.
type Env struct {
	Config config.Config
	Logger *log.Logger
	Tone   hal.Tone // may be nil for silence

	// ScreenshotDir is where captured frames are written.
	ScreenshotDir string
}

// Backend presents a match on some output device. It owns the display and
// the buttons; the core game logic is shared.
type Backend interface {
	// ID returns a unique identifier used on the command line (e.g. "tea").
	ID() string

	// Title returns a human-readable description.
	Title() string

	// Run plays one match and returns when it ends, the player quits, or
	// ctx is done.
	Run(ctx context.Context, env Env) error
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new backend instance.
type Factory func() Backend

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a backend factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", id))
	}

	factories[id] = f

	titles[id] = f().Title()
}

// List returns information about all registered backends, sorted by ID.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(factories))
	for id := range factories {
		result = append(result, BackendInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create returns a fresh backend for id.
func Create(id string) (Backend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", id)
	}

	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
