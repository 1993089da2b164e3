package racer

import (
	"math/rand"

	"github.com/vovakirdan/lanerush/internal/config"
)

// spawnOrder fixes the order of random draws per tick so runs are reproducible.
var spawnOrder = [...]Kind{KindReward, KindObstacle}

// Spawner decides whether a new entity appears this tick.
type Spawner struct {
	rewardRate   float64
	obstacleRate float64
	refMs        float64
	lanes        int
}

// NewSpawner creates a spawner from config.
func NewSpawner(cfg config.RacerConfig) Spawner {
	return Spawner{
		rewardRate:   cfg.Spawn.RewardRate,
		obstacleRate: cfg.Spawn.ObstacleRate,
		refMs:        cfg.Speed.ReferenceFrameMs,
		lanes:        cfg.Field.Lanes,
	}
}

// Probability returns the chance that kind spawns in a tick of dtMs.
// Rates are per reference frame, so the expected spawns per second do not
// depend on the actual frame rate.
func (s Spawner) Probability(kind Kind, dtMs float64) float64 {
	rate := s.rewardRate
	if kind == KindObstacle {
		rate = s.obstacleRate
	}
	return rate * dtMs / s.refMs
}

// Roll draws one sample for kind and, on success, a uniformly random lane.
// All randomness comes from rng.
func (s Spawner) Roll(kind Kind, dtMs float64, rng *rand.Rand) (lane int, ok bool) {
	if rng.Float64() >= s.Probability(kind, dtMs) {
		return 0, false
	}
	return rng.Intn(s.lanes), true
}
