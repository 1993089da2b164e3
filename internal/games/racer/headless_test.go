package racer

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/lanerush/internal/config"
)

func TestRunHeadlessQuiet(t *testing.T) {
	obs := &recordingObserver{}
	snap, err := RunHeadless(quietConfig(), 1, HeadlessOptions{Ticks: 100, Delta: frame}, obs)
	if err != nil {
		t.Fatalf("RunHeadless() failed: %v", err)
	}
	if snap.Phase != PhaseRunning || snap.Tick != 100 {
		t.Errorf("snapshot = %+v, expected 100 running ticks", snap)
	}
	if snap.Elapsed != 100*frame {
		t.Errorf("elapsed = %v, expected %v", snap.Elapsed, 100*frame)
	}
	if len(obs.seeds) != 1 || len(obs.ticks) != 100 || len(obs.ended) != 0 {
		t.Errorf("observer saw %d starts, %d ticks, %d ends", len(obs.seeds), len(obs.ticks), len(obs.ended))
	}
}

func TestRunHeadlessEnds(t *testing.T) {
	obs := &recordingObserver{}
	snap, err := RunHeadless(config.DefaultRacerConfig(), 7, HeadlessOptions{Ticks: 1_000_000, Delta: frame}, obs)
	if err != nil {
		t.Fatalf("RunHeadless() failed: %v", err)
	}
	if snap.Phase != PhaseEnded {
		t.Fatalf("phase = %s, expected the run to end", snap.Phase)
	}
	if len(obs.ended) != 1 || obs.ended[0].Tick != snap.Tick {
		t.Errorf("expected one RunEnded with the final snapshot")
	}
	if int(snap.Tick) != len(obs.ticks) {
		t.Errorf("observer saw %d ticks, match ran %d", len(obs.ticks), snap.Tick)
	}
}

func TestRunHeadlessAutopilotOutlasts(t *testing.T) {
	const seeds = 10
	opts := HeadlessOptions{Ticks: 20_000, Delta: frame}
	var plain, piloted uint64

	for seed := int64(1); seed <= seeds; seed++ {
		a, _ := RunHeadless(config.DefaultRacerConfig(), seed, opts)
		plain += a.Tick

		opts.Autopilot = true
		b, _ := RunHeadless(config.DefaultRacerConfig(), seed, opts)
		piloted += b.Tick
		opts.Autopilot = false
	}
	if piloted <= plain {
		t.Errorf("autopilot survived %d ticks in total, holding the lane %d", piloted, plain)
	}
}

func TestRunHeadlessInvalidConfig(t *testing.T) {
	cfg := config.DefaultRacerConfig()
	cfg.Speed.ReferenceFrameMs = 0
	if _, err := RunHeadless(cfg, 1, HeadlessOptions{Ticks: 1, Delta: time.Millisecond}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("RunHeadless() = %v, expected ErrInvalidConfig", err)
	}
}
