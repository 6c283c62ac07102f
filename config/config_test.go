package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults() error: %v", err)
	}

	if cfg.Weights.Separation != 2 || cfg.Weights.Flee != 5 {
		t.Errorf("unexpected default weights: %+v", cfg.Weights)
	}
	if cfg.Prey.Count != 20 || cfg.Prey.FlockRadius != 80 {
		t.Errorf("unexpected prey defaults: %+v", cfg.Prey)
	}
	if cfg.Derived.WorldW != 800 || cfg.Derived.WorldH != 600 {
		t.Errorf("world should default to screen size, got %vx%v", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("weights:\n  flee: 7.5\nworld:\n  width: 1000\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Weights.Flee != 7.5 {
		t.Errorf("flee = %v, want 7.5", cfg.Weights.Flee)
	}
	// Untouched fields keep their defaults
	if cfg.Weights.Separation != 2 {
		t.Errorf("separation = %v, want default 2", cfg.Weights.Separation)
	}
	if cfg.Derived.WorldW != 1000 || cfg.Derived.WorldH != 600 {
		t.Errorf("world = %vx%v, want 1000x600", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
}

func TestDefaultPredatorCount(t *testing.T) {
	if got := MustDefaults().Predator.Count; got != 2 {
		t.Errorf("default predator count = %d, want 2", got)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("predator:\n  count: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Predator.Count != 0 {
		t.Errorf("predator count = %d, want 0 from user file", cfg.Predator.Count)
	}
	if cfg.Predator.Speed != 2.5 {
		t.Errorf("predator speed = %v, want default 2.5", cfg.Predator.Speed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestClampOutOfRange(t *testing.T) {
	cfg := MustDefaults()
	cfg.Weights.Separation = -3
	cfg.Weights.Flee = 42
	cfg.Prey.Speed = 11
	cfg.Predator.MaxTurnAngle = 10
	cfg.Prey.FlockRadius = -1
	cfg.Prey.Count = -5
	cfg.Weights.Alignment = math.NaN()
	cfg.Sim.TickDelayMS = 0

	cfg.Clamp()

	checks := []struct {
		name      string
		got, want float64
	}{
		{"separation", cfg.Weights.Separation, 0},
		{"flee", cfg.Weights.Flee, 10},
		{"alignment", cfg.Weights.Alignment, 0},
		{"prey speed", cfg.Prey.Speed, 10},
		{"predator turn", cfg.Predator.MaxTurnAngle, math.Pi},
		{"flock radius", cfg.Prey.FlockRadius, 0},
		{"prey count", float64(cfg.Prey.Count), 0},
		{"tick delay", float64(cfg.Sim.TickDelayMS), 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := MustDefaults()
	cfg.Weights.Cohesion = 3.25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Weights.Cohesion != 3.25 {
		t.Errorf("cohesion = %v, want 3.25", loaded.Weights.Cohesion)
	}
}
