package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsPlain bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `List the most recent runs in the journal, newest first.

In a terminal this opens an interactive browser where Enter replays the
highlighted run and checks it against the recorded outcome. When output is
piped, or with --plain, a text table is printed instead.

Examples:
  snake runs
  snake runs --limit 50 --plain
  snake runs --clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a text table instead of the interactive browser")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every recorded run")
}

func runRuns(_ *cobra.Command, _ []string) {
	logger := mustLogger(os.Stderr)

	// Open run journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		logger.Info("run journal cleared", "db", flagDBPath)
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("runs loaded", "count", len(runs), "db", flagDBPath)

	if !flagRunsPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.BrowseRuns(runs, store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printRuns(runs)
}

// printRuns writes runs as a plain text table.
func printRuns(runs []storage.Run) {
	fmt.Println("Recent Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to record the first run!")
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-6s  %-10s  %-6s  %-20s  %s\n", "ID", "Score", "Cause", "Steps", "Seed", "Date")
	fmt.Printf("  %-6s  %-6s  %-10s  %-6s  %-20s  %s\n", "--", "-----", "-----", "-----", "----", "----")

	best := 0
	for _, r := range runs {
		dateStr := r.EndedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-6d  %-6d  %-10s  %-6d  %-20d  %s\n", r.ID, r.Score, r.Cause, r.Steps, r.Seed, dateStr)
		best = max(best, r.Score)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", best)
}
