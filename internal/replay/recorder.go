// Package replay records runs into the store and re-simulates them.
// A run is fully described by its seed, its config and the delta and input
// of every tick, so re-running those through a fresh match must reproduce
// the original outcome exactly.
package replay

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/games/racer"
	"github.com/vovakirdan/lanerush/internal/storage"
)

// Sink persists a finished recording. *storage.Store implements it.
type Sink interface {
	SaveRun(run storage.Run, ticks []storage.TickRecord) (int64, error)
}

var _ Sink = (*storage.Store)(nil)

// Recorder is a racer.Observer that captures each run and saves it to a
// Sink when the run ends.
type Recorder struct {
	sink   Sink
	preset config.DifficultyPreset
	logger *log.Logger

	active  bool
	seed    int64
	cfgYAML string
	ticks   []storage.TickRecord

	lastID  int64
	lastErr error
}

// NewRecorder creates a recorder. preset is stored alongside each run for
// display only; the config snapshot already has the preset applied.
func NewRecorder(sink Sink, preset config.DifficultyPreset, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{sink: sink, preset: preset, logger: logger}
}

var _ racer.Observer = (*Recorder)(nil)

// RunStarted begins a new recording, dropping any unfinished one.
func (r *Recorder) RunStarted(seed int64, cfg config.RacerConfig) {
	data, err := config.MarshalRacer(cfg)
	if err != nil {
		r.active = false
		r.lastErr = fmt.Errorf("replay: cannot snapshot config: %w", err)
		r.logger.Error("recording disabled for run", "err", err)
		return
	}
	r.active = true
	r.seed = seed
	r.cfgYAML = string(data)
	r.ticks = r.ticks[:0]
}

// Ticked appends one tick to the recording.
func (r *Recorder) Ticked(out racer.Outcome, in racer.Input) {
	if !r.active {
		return
	}
	r.ticks = append(r.ticks, storage.TickRecord{Delta: out.Delta, Input: in.Bits()})
}

// RunEnded saves the recording.
func (r *Recorder) RunEnded(final racer.Snapshot) {
	r.save(final)
}

// Flush saves a run that is still in progress, e.g. when the player quits
// mid-run. It does nothing if there is no active recording.
func (r *Recorder) Flush(current racer.Snapshot) {
	if !r.active || len(r.ticks) == 0 {
		return
	}
	r.save(current)
}

func (r *Recorder) save(final racer.Snapshot) {
	if !r.active {
		return
	}
	r.active = false

	run := storage.Run{
		Seed:    r.seed,
		Preset:  string(r.preset),
		Config:  r.cfgYAML,
		Score:   final.Score,
		Phase:   final.Phase.String(),
		Elapsed: final.Elapsed,
	}
	id, err := r.sink.SaveRun(run, r.ticks)
	if err != nil {
		r.lastErr = fmt.Errorf("replay: cannot save run: %w", err)
		r.logger.Error("failed to save run", "err", err)
		return
	}
	r.lastID, r.lastErr = id, nil
	r.logger.Info("run recorded", "id", id, "score", final.Score, "ticks", len(r.ticks))
}

// LastRunID returns the ID of the most recently saved run, or 0.
func (r *Recorder) LastRunID() int64 {
	return r.lastID
}

// Err returns the error of the last failed snapshot or save.
func (r *Recorder) Err() error {
	return r.lastErr
}
