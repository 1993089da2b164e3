// Package config provides YAML-based game configuration loading and
// difficulty presets for lanerush.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid racer config")

// RacerConfig contains all tunables of the lane racer simulation.
// Distances are in field units, times in milliseconds.
type RacerConfig struct {
	Field   RacerField   `yaml:"field"`
	Speed   RacerSpeed   `yaml:"speed"`
	Spawn   RacerSpawn   `yaml:"spawn"`
	Scoring RacerScoring `yaml:"scoring"`
}

// RacerField defines the play area geometry.
type RacerField struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Lanes        int     `yaml:"lanes"`
	ObjectSize   float64 `yaml:"object_size"`
	HitboxInset  float64 `yaml:"hitbox_inset"`  // Horizontal margin inside the lane
	PlayerOffset float64 `yaml:"player_offset"` // Distance of the player's top edge from the bottom
}

// RacerSpeed defines the fall speed and its linear ramp.
type RacerSpeed struct {
	Initial          float64 `yaml:"initial"`            // Field units per reference frame
	RampRate         float64 `yaml:"ramp_rate"`          // Speed added per millisecond
	ReferenceFrameMs float64 `yaml:"reference_frame_ms"` // Nominal frame the rates are calibrated to
}

// RacerSpawn defines per-kind spawn probabilities per reference frame.
type RacerSpawn struct {
	RewardRate   float64 `yaml:"reward_rate"`
	ObstacleRate float64 `yaml:"obstacle_rate"`
}

// RacerScoring defines point values.
type RacerScoring struct {
	RewardPoints int `yaml:"reward_points"`
}

// LaneWidth returns the width of a single lane.
func (f RacerField) LaneWidth() float64 {
	if f.Lanes <= 0 {
		return 0
	}
	return f.Width / float64(f.Lanes)
}

// Validate checks that the config can drive a match.
func (c RacerConfig) Validate() error {
	switch {
	case !allFinite(
		c.Field.Width, c.Field.Height, c.Field.ObjectSize, c.Field.HitboxInset, c.Field.PlayerOffset,
		c.Speed.Initial, c.Speed.RampRate, c.Speed.ReferenceFrameMs,
		c.Spawn.RewardRate, c.Spawn.ObstacleRate,
	):
		return fmt.Errorf("%w: values must be finite numbers", ErrInvalidConfig)
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have positive size, got %gx%g", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	case c.Field.Lanes < 1:
		return fmt.Errorf("%w: need at least one lane, got %d", ErrInvalidConfig, c.Field.Lanes)
	case c.Field.ObjectSize <= 0:
		return fmt.Errorf("%w: object_size must be positive", ErrInvalidConfig)
	case c.Field.HitboxInset < 0 || 2*c.Field.HitboxInset >= c.Field.LaneWidth():
		return fmt.Errorf("%w: hitbox_inset %g does not fit lane width %g", ErrInvalidConfig, c.Field.HitboxInset, c.Field.LaneWidth())
	case c.Field.PlayerOffset <= 0 || c.Field.PlayerOffset > c.Field.Height:
		return fmt.Errorf("%w: player_offset must be within the field height", ErrInvalidConfig)
	case c.Speed.Initial < 0 || c.Speed.RampRate < 0:
		return fmt.Errorf("%w: speed and ramp rate must be non-negative", ErrInvalidConfig)
	case c.Speed.ReferenceFrameMs <= 0:
		return fmt.Errorf("%w: reference_frame_ms must be positive", ErrInvalidConfig)
	case c.Spawn.RewardRate < 0 || c.Spawn.ObstacleRate < 0:
		return fmt.Errorf("%w: spawn rates must be non-negative", ErrInvalidConfig)
	case c.Scoring.RewardPoints < 0:
		return fmt.Errorf("%w: reward_points must be non-negative", ErrInvalidConfig)
	}
	return nil
}

func allFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
