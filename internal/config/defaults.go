package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:     40,
			Height:    40,
			CellWidth: 2,
		},
		Start: StartConfig{
			X:       10,
			Y:       10,
			Heading: "right",
		},
		Timing: TimingConfig{
			TickMS: 100,
		},
		Food: FoodConfig{
			Retries: 64,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
