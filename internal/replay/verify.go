package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/games/racer"
	"github.com/vovakirdan/lanerush/internal/storage"
)

// ErrMismatch is returned when a re-simulated run diverges from its header.
var ErrMismatch = errors.New("replay: run diverged from recording")

// Source loads recorded runs. *storage.Store implements it.
type Source interface {
	Run(id int64) (storage.Run, error)
	Ticks(id int64) ([]storage.TickRecord, error)
}

var _ Source = (*storage.Store)(nil)

// Result is the state reached by re-running a recording.
type Result struct {
	Run   storage.Run
	Final racer.Snapshot
}

// Simulate re-runs a recording from its seed, config and tick log.
// Every tick is applied, even ticks after the run ended, so a corrupt log
// shows up as a tick count mismatch.
func Simulate(run storage.Run, ticks []storage.TickRecord) (racer.Snapshot, error) {
	cfg, err := config.ParseRacer([]byte(run.Config))
	if err != nil {
		return racer.Snapshot{}, fmt.Errorf("replay: run %d: %w", run.ID, err)
	}
	m, err := racer.NewMatch(cfg, run.Seed)
	if err != nil {
		return racer.Snapshot{}, fmt.Errorf("replay: run %d: %w", run.ID, err)
	}
	if err := m.Start(); err != nil {
		return racer.Snapshot{}, err
	}
	for _, tick := range ticks {
		m.Advance(tick.Delta, racer.InputFromBits(tick.Input))
	}
	return m.Snapshot(), nil
}

// Verify loads a run, re-simulates it and checks that score, phase, tick
// count and elapsed time match what was recorded.
func Verify(src Source, id int64) (Result, error) {
	run, err := src.Run(id)
	if err != nil {
		return Result{}, err
	}
	ticks, err := src.Ticks(id)
	if err != nil {
		return Result{}, err
	}

	final, err := Simulate(run, ticks)
	if err != nil {
		return Result{}, err
	}
	res := Result{Run: run, Final: final}

	switch {
	case final.Score != run.Score:
		return res, fmt.Errorf("%w: score %d, recorded %d", ErrMismatch, final.Score, run.Score)
	case final.Phase.String() != run.Phase:
		return res, fmt.Errorf("%w: phase %s, recorded %s", ErrMismatch, final.Phase, run.Phase)
	case int(final.Tick) != run.Ticks:
		return res, fmt.Errorf("%w: %d ticks simulated, %d recorded", ErrMismatch, final.Tick, run.Ticks)
	case final.Elapsed.Round(time.Microsecond) != run.Elapsed.Round(time.Microsecond):
		return res, fmt.Errorf("%w: elapsed %v, recorded %v", ErrMismatch, final.Elapsed, run.Elapsed)
	}
	return res, nil
}
