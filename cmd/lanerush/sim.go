package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/games/racer"
	"github.com/vovakirdan/lanerush/internal/replay"
	"github.com/vovakirdan/lanerush/internal/storage"
)

var (
	flagSimTicks      int
	flagSimDelta      time.Duration
	flagSimAutopilot  bool
	flagSimRecord     bool
	flagSimConfig     string
	flagSimDifficulty string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Play one run without a terminal, using a fixed frame delta, and print
a summary. Without --autopilot the car never leaves the centre lane.

Examples:
  lanerush sim
  lanerush sim --autopilot --ticks 200000 --seed 7
  lanerush sim --dt 33ms --difficulty hard --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 36000, "Maximum number of ticks")
	simCmd.Flags().DurationVar(&flagSimDelta, "dt", 16*time.Millisecond, "Frame delta")
	simCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", false, "Steer away from obstacles")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Record the run for replay")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) {
	if err := simulate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// simulate plays one headless run and prints its summary.
func simulate() error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	racerCfg, preset, err := loadRacerConfig(flagSimConfig, flagSimDifficulty)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var observers []racer.Observer
	var rec *replay.Recorder
	if flagSimRecord {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			return fmt.Errorf("opening runs database: %w", openErr)
		}
		defer store.Close()
		rec = replay.NewRecorder(store, preset, logger)
		observers = append(observers, rec)
	}

	start := time.Now()
	final, err := racer.RunHeadless(racerCfg, seed, racer.HeadlessOptions{
		Ticks:     flagSimTicks,
		Delta:     flagSimDelta,
		Autopilot: flagSimAutopilot,
		Logger:    logger,
	}, observers...)
	if err != nil {
		return err
	}
	if rec != nil {
		rec.Flush(final)
	}

	fmt.Printf("Seed:     %d\n", seed)
	fmt.Printf("Phase:    %s\n", final.Phase)
	fmt.Printf("Score:    %d\n", final.Score)
	fmt.Printf("Ticks:    %d\n", final.Tick)
	fmt.Printf("Game time: %s\n", final.Elapsed.Round(time.Millisecond))
	fmt.Printf("Speed:    %.2f\n", final.Speed)
	fmt.Printf("Spawned:  %d\n", final.NextID)
	fmt.Printf("Wall time: %s\n", time.Since(start).Round(time.Millisecond))
	if rec != nil {
		if rec.Err() != nil {
			return fmt.Errorf("recording run: %w", rec.Err())
		}
		fmt.Printf("Recorded: #%d\n", rec.LastRunID())
	}
	return nil
}
