package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Display the most recent recorded runs, newest first.

Examples:
  lanerush runs
  lanerush runs --limit 50`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lanerush play' to record your first run!")
		return
	}

	fmt.Printf("  %-6s  %-16s  %-8s  %-8s  %-8s  %-8s  %s\n", "ID", "Date", "Preset", "Score", "Ticks", "Time", "Phase")
	fmt.Printf("  %-6s  %-16s  %-8s  %-8s  %-8s  %-8s  %s\n", "--", "----", "------", "-----", "-----", "----", "-----")

	for _, run := range runs {
		preset := run.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Printf("  %-6d  %-16s  %-8s  %-8d  %-8d  %-8s  %s\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04"),
			preset,
			run.Score,
			run.Ticks,
			run.Elapsed.Round(time.Second),
			run.Phase,
		)
	}
}
