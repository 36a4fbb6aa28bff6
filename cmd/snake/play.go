package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing snake.

Controls:
  Arrows/WASD/hjkl - Steer
  R                - Restart (any time)
  Ctrl+S           - Save a text screenshot to ~/.snake/screenshots
  ?                - Show all keys
  Q/Esc/Ctrl+C     - Quit

Examples:
  snake play
  snake play --seed 42
  snake play --config ./my-snake.yaml
  snake play --log-file /tmp/snake.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := playGame(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playGame runs an interactive session. Every resource it opens is released
// before it returns, so callers may exit on error.
func playGame() error {
	// The alt screen owns the terminal, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}

	fileCfg, source, err := config.LoadSnake(flagConfig)
	if err != nil {
		logger.Error("config rejected", "err", err)
		return err
	}
	snakeCfg, err := snake.ConfigFrom(fileCfg)
	if err != nil {
		logger.Error("config rejected", "source", source, "err", err)
		return err
	}
	logger.Info("config loaded", "source", source, "grid", fmt.Sprintf("%dx%d", fileCfg.Grid.Width, fileCfg.Grid.Height), "tick", snakeCfg.TickInterval)

	// Get terminal size for the screen buffer
	width, height := core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.DefaultConfig()
	runtime.ScreenW = width
	runtime.ScreenH = height
	runtime.FPS = flagFPS
	runtime.Seed = flagSeed

	opts := tui.Options{
		Snake:     snakeCfg,
		CellWidth: fileCfg.Grid.CellWidth,
		Runtime:   runtime,
		Logger:    logger,
	}

	// Open run journal
	if !flagNoJournal {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
			// Continue without storage - game still works
			logger.Warn("journal disabled", "err", err)
		} else {
			defer store.Close()
			opts.Saver = store
		}
	}

	if err := tui.Run(opts); err != nil {
		logger.Error("game stopped", "err", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
