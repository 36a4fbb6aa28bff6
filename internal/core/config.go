package core

// RuntimeConfig contains configuration passed from the CLI to the terminal shell.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	FPS     int   // Host polls per second; the simulation step is independent of it
	Seed    int64 // RNG seed for deterministic gameplay, 0 means time based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FPS:     60,
		Seed:    0, // 0 means use current time in platform layer
	}
}
