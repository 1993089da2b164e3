package racer

import (
	"testing"

	"github.com/vovakirdan/lanerush/internal/config"
)

// quietConfig returns the default config with spawning and ramp disabled,
// so tests control every entity.
func quietConfig() config.RacerConfig {
	cfg := config.DefaultRacerConfig()
	cfg.Spawn.RewardRate = 0
	cfg.Spawn.ObstacleRate = 0
	cfg.Speed.RampRate = 0
	return cfg
}

func runningMatch(t *testing.T, cfg config.RacerConfig, seed int64) *Match {
	t.Helper()
	m, err := NewMatch(cfg, seed)
	if err != nil {
		t.Fatalf("NewMatch() failed: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return m
}

// place injects an entity the way the spawner would.
func place(m *Match, kind Kind, lane int, y float64) Entity {
	e := Entity{ID: m.nextID, Lane: lane, Y: y, Kind: kind}
	m.nextID++
	m.entities = append(m.entities, e)
	return e
}
