package main

import (
	"github.com/vovakirdan/lanerush/internal/config"
)

// loadRacerConfig loads the game config and applies the difficulty preset.
func loadRacerConfig(path, difficulty string) (config.RacerConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.RacerConfig{}, "", err
	}
	cfg, err := config.LoadRacer(path)
	if err != nil {
		return config.RacerConfig{}, "", err
	}
	if preset != "" {
		config.ApplyRacerPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return config.RacerConfig{}, "", err
	}
	return cfg, preset, nil
}
