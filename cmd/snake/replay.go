package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/journal"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded run and verify its outcome",
	Long: `Re-run a journaled game from its seed and steering inputs and check that
it reaches the recorded score, end cause and step count.

Exits with status 1 when the replay does not match.

Examples:
  snake replay 17
  snake runs --plain   # find run IDs`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	logger := mustLogger(os.Stderr)

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run id %q\n", args[0])
		os.Exit(1)
	}

	// Open run journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}

	run, err := store.Run(id)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'snake runs --plain' to see recorded runs.")
		os.Exit(1)
	}

	res, err := journal.Verify(*run)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying run: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("replayed", "id", id, "seed", run.Seed, "inputs", len(run.Inputs), "snapshot", res.Snapshot)

	fmt.Println(tui.VerifySummary(res))
	if !res.Matches() {
		os.Exit(1)
	}
}
