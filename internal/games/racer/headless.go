package racer

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanerush/internal/config"
)

// HeadlessOptions controls a run without a terminal.
type HeadlessOptions struct {
	Ticks     int           // Upper bound on ticks; the run may end earlier
	Delta     time.Duration // Fixed frame delta
	Autopilot bool          // Steer away from obstacles instead of holding the lane
	Logger    *log.Logger
}

// RunHeadless plays one run with a fixed frame delta and reports it to the
// observers the same way Game does. A run still in progress after
// opts.Ticks is returned as is; RunEnded is not called for it.
func RunHeadless(cfg config.RacerConfig, seed int64, opts HeadlessOptions, obs ...Observer) (Snapshot, error) {
	m, err := NewMatch(cfg, seed, WithLogger(opts.Logger))
	if err != nil {
		return Snapshot{}, err
	}
	if err := m.Start(); err != nil {
		return Snapshot{}, err
	}
	for _, o := range obs {
		o.RunStarted(seed, cfg)
	}

	pilot := NewAutopilot(m.Field())
	for i := 0; i < opts.Ticks; i++ {
		var in Input
		if opts.Autopilot {
			in = pilot.Steer(m.Snapshot())
		}
		out := m.Advance(opts.Delta, in)
		for _, o := range obs {
			o.Ticked(out, in)
		}
		if out.Crashed {
			final := m.Snapshot()
			for _, o := range obs {
				o.RunEnded(final)
			}
			return final, nil
		}
	}
	return m.Snapshot(), nil
}
