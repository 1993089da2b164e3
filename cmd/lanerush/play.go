package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lanerush/internal/audio"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/games/racer"
	playterm "github.com/vovakirdan/lanerush/internal/platform/term"
	"github.com/vovakirdan/lanerush/internal/platform/tui"
	"github.com/vovakirdan/lanerush/internal/replay"
	"github.com/vovakirdan/lanerush/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagFrontend   string
	flagSound      bool
	flagRecord     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  ←/A/H      - Move one lane left
  →/D/L      - Move one lane right
  Space      - Start
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Screenshot (tui frontend)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, gentler ramp, fewer obstacles
  normal - The config as loaded
  hard   - Faster start, steeper ramp, more obstacles
  fixed  - No speed ramp

Examples:
  lanerush play
  lanerush play --difficulty easy
  lanerush play --frontend tcell --sound
  lanerush play --config ./my-racer.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagFrontend, "frontend", "tui", "Terminal frontend: tui or tcell")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().BoolVar(&flagRecord, "record", true, "Record runs for replay")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := playGame(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playGame runs an interactive session. Every resource it opens is released
// before it returns, including on error.
func playGame() error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	racerCfg, preset, err := loadRacerConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	game, err := racer.NewGame(racerCfg, logger)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	var rec *replay.Recorder
	if flagRecord {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", openErr)
		} else {
			defer store.Close()
			rec = replay.NewRecorder(store, preset, logger)
			game.Observe(rec)
		}
	}

	if flagSound {
		player := audio.NewPlayer(0.6, logger)
		if initErr := player.Init(); initErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", initErr)
		} else {
			defer player.Close()
			game.Observe(audio.NewCues(player))
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var runErr error
	switch flagFrontend {
	case "tui":
		runErr = tui.Run(game, cfg, tui.WithLogger(logger))
	case "tcell":
		runErr = runTcell(game, cfg, logger)
	default:
		runErr = fmt.Errorf("unknown frontend %q (want tui or tcell)", flagFrontend)
	}

	if rec != nil {
		rec.Flush(game.Snapshot())
		if id := rec.LastRunID(); id != 0 {
			fmt.Printf("Last run recorded as #%d (lanerush replay %d)\n", id, id)
		}
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

func runTcell(game core.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("tcell frontend started")
	err = playterm.NewRunner(screen, game, cfg, logger).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
