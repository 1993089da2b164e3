package racer

import (
	"context"
	"sync"
	"time"
)

// Loop calls a frame function at a fixed interval on the goroutine that
// called Run. Stopping is explicit and may be requested any number of times.
type Loop struct {
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewLoop creates a loop that fires every interval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Loop{
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run blocks, calling frame with the tick time, until frame returns false,
// Stop is called, or ctx is done. Returns ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context, frame func(now time.Time) bool) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case now := <-ticker.C:
			if !frame(now) {
				l.Stop()
				return nil
			}
		}
	}
}

// Stop ends Run. Calling Stop on a stopped loop is a no-op.
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.stop)
	})
}
