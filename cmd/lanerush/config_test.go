package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRacerConfigPreset(t *testing.T) {
	cfg, preset, err := loadRacerConfig("", "fixed")
	if err != nil {
		t.Fatalf("loadRacerConfig() failed: %v", err)
	}
	if preset != "fixed" {
		t.Errorf("preset = %q, expected fixed", preset)
	}
	if cfg.Speed.RampRate != 0 {
		t.Errorf("fixed preset should disable the ramp, got %f", cfg.Speed.RampRate)
	}
}

func TestLoadRacerConfigUnknownDifficulty(t *testing.T) {
	if _, _, err := loadRacerConfig("", "insane"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestLoadRacerConfigCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "racer.yaml")
	if err := os.WriteFile(path, []byte("field:\n  lanes: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := loadRacerConfig(path, "")
	if err != nil {
		t.Fatalf("loadRacerConfig() failed: %v", err)
	}
	if cfg.Field.Lanes != 4 {
		t.Errorf("lanes = %d, expected 4", cfg.Field.Lanes)
	}
}
