// snake is a terminal snake game with a replayable run journal.
//
// Usage:
//
//	snake                    - Play (same as snake play)
//	snake play               - Play a game
//	snake runs               - Browse recently recorded runs
//	snake replay <id>        - Replay a recorded run and verify its outcome
//	snake config             - Print the effective configuration as YAML
//
// Global flags:
//
//	--fps <rate>        - Set host poll rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set run journal path (default: ~/.snake/runs.db)
//	--config <path>     - Use a custom config YAML
//	--log-file <path>   - Write logs to a file while playing
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLogFile   string
	flagLogLevel  string
	flagNoJournal bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake is the classic grid game played in your terminal.

Every finished game is recorded to a local run journal with its seed and
steering inputs, so it can be replayed and verified later.

Available commands:
  play     - Play a game (default)
  runs     - Browse recorded runs
  replay   - Replay and verify a recorded run
  config   - Print the effective configuration

Examples:
  snake
  snake play --seed 42
  snake runs
  snake replay 17
  snake config > ~/.snake/configs/snake.yaml`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host poll rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing (default: discarded)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record runs")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the structured logger used by every command.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	}), nil
}

// mustLogger is newLogger for commands that cannot continue without one.
func mustLogger(w io.Writer) *log.Logger {
	logger, err := newLogger(w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger
}
