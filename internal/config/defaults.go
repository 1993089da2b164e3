package config

import (
	_ "embed"
)

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

// DefaultRacerConfig returns the default lane racer configuration.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		Field: RacerField{
			Width:        400,
			Height:       600,
			Lanes:        3,
			ObjectSize:   50,
			HitboxInset:  10,
			PlayerOffset: 100,
		},
		Speed: RacerSpeed{
			Initial:          5,
			RampRate:         0.0005,
			ReferenceFrameMs: 16,
		},
		Spawn: RacerSpawn{
			RewardRate:   0.02,
			ObstacleRate: 0.015,
		},
		Scoring: RacerScoring{
			RewardPoints: 10,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRacerYAML
}
