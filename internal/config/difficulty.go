package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Empty means "keep the config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// presetScale holds multipliers applied on top of the loaded config.
type presetScale struct {
	initial  float64
	ramp     float64
	obstacle float64
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {initial: 0.8, ramp: 0.5, obstacle: 0.75},
	DifficultyNormal: {initial: 1, ramp: 1, obstacle: 1},
	DifficultyHard:   {initial: 1.4, ramp: 1.6, obstacle: 1.3},
}

// ApplyRacerPreset modifies the config based on a difficulty preset.
// The fixed preset keeps every value but disables the speed ramp.
func ApplyRacerPreset(cfg *RacerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Speed.RampRate = 0
		return
	}
	scale, ok := presetScales[preset]
	if !ok {
		return
	}
	cfg.Speed.Initial *= scale.initial
	cfg.Speed.RampRate *= scale.ramp
	cfg.Spawn.ObstacleRate *= scale.obstacle
}
