package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/replay"
	"github.com/vovakirdan/lanerush/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded run and verify it",
	Long: `Load a recorded run, play it again from its seed, config and tick log,
and check that it ends with the same score, phase and tick count.

Examples:
  lanerush runs
  lanerush replay 12`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run id %q\n", args[0])
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		closeLog()
		os.Exit(1)
	}
	defer store.Close()

	start := time.Now()
	res, err := replay.Verify(store, id)
	logger.Debug("replay finished", "id", id, "took", time.Since(start))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run #%d failed verification: %v\n", id, err)
		store.Close()
		closeLog()
		os.Exit(1)
	}

	fmt.Printf("Run #%d verified\n", id)
	fmt.Printf("  Seed:   %d\n", res.Run.Seed)
	fmt.Printf("  Score:  %d\n", res.Final.Score)
	fmt.Printf("  Ticks:  %d\n", res.Final.Tick)
	fmt.Printf("  Time:   %s\n", res.Final.Elapsed.Round(time.Millisecond))
	fmt.Printf("  Phase:  %s\n", res.Final.Phase)
}
