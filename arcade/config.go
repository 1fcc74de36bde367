// Package arcade holds what every game shares: the playfield configuration,
// the canvas games paint on, and the Session that owns a game's timers, input
// bindings and colliders for exactly as long as the game runs.
package arcade

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/plus3/gridarcade/physics"
)

var (
	// ErrInvalidConfig is wrapped by every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownGame is returned when a game name is not in the catalog.
	ErrUnknownGame = errors.New("unknown game")
)

// Config describes the playfield and process-level options.
type Config struct {
	Columns  int
	Rows     int
	CellSize int     // pixels per cell when rendering
	Speed    float64 // animation speed multiplier
	Seed     uint64  // 0 picks a random seed
	Debug    bool
	LogLevel slog.Level
}

// DefaultConfig returns a 10x20 field of 24 pixel cells.
func DefaultConfig() Config {
	return Config{
		Columns:  10,
		Rows:     20,
		CellSize: 24,
		Speed:    1,
		LogLevel: slog.LevelInfo,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Columns <= 0:
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidConfig, c.Columns)
	case c.Rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfig, c.Rows)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, c.CellSize)
	case c.Speed <= 0:
		return fmt.Errorf("%w: speed must be positive, got %v", ErrInvalidConfig, c.Speed)
	}
	return nil
}

// Bounds returns the playfield bounds used by physics.
func (c Config) Bounds() physics.Bounds {
	return physics.Size(c.Columns, c.Rows)
}

// ScreenSize returns the playfield size in pixels.
func (c Config) ScreenSize() (int, int) {
	return c.Columns * c.CellSize, c.Rows * c.CellSize
}
