// Package config provides YAML-based configuration for the snake board,
// start position and timing.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Start  StartConfig  `yaml:"start"`
	Timing TimingConfig `yaml:"timing"`
	Food   FoodConfig   `yaml:"food"`
}

// GridConfig defines the board size and how wide a cell is drawn.
type GridConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	CellWidth int `yaml:"cell_width"` // Terminal columns per grid cell
}

// StartConfig defines where a fresh snake is placed and where it heads.
type StartConfig struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Heading string `yaml:"heading"` // up, down, left or right
}

// TimingConfig defines the fixed simulation step.
type TimingConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// FoodConfig defines food placement parameters.
type FoodConfig struct {
	Retries int `yaml:"retries"` // Random draws before falling back to the free-cell list
}

// TickInterval returns the simulation step as a duration.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickMS) * time.Millisecond
}

// Validate checks that the config describes a playable board.
func (c SnakeConfig) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.CellWidth <= 0 {
		return fmt.Errorf("%w: cell_width must be positive, got %d", ErrInvalid, c.Grid.CellWidth)
	}
	if c.Start.X < 0 || c.Start.X >= c.Grid.Width || c.Start.Y < 0 || c.Start.Y >= c.Grid.Height {
		return fmt.Errorf("%w: start (%d,%d) is outside the %dx%d grid",
			ErrInvalid, c.Start.X, c.Start.Y, c.Grid.Width, c.Grid.Height)
	}
	switch c.Start.Heading {
	case "up", "down", "left", "right":
	default:
		return fmt.Errorf("%w: unknown start heading %q", ErrInvalid, c.Start.Heading)
	}
	if c.Timing.TickMS <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalid, c.Timing.TickMS)
	}
	if c.Food.Retries < 0 {
		return fmt.Errorf("%w: food retries must not be negative, got %d", ErrInvalid, c.Food.Retries)
	}
	return nil
}
