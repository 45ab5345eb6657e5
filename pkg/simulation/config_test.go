package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lao-tseu-is-alive/go-superboids/pkg/flock"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Settings() != flock.DefaultSettings() {
		t.Errorf("Settings() = %+v; want %+v", cfg.Settings(), flock.DefaultSettings())
	}
	if cfg.Limits() != flock.DefaultLimits() {
		t.Errorf("Limits() = %+v; want %+v", cfg.Limits(), flock.DefaultLimits())
	}
	if cfg.TickStep() != flock.DefaultStep {
		t.Errorf("TickStep() = %v; want %v", cfg.TickStep(), flock.DefaultStep)
	}
	if b := cfg.Bounds(); b.Width() != 1280 || b.Height() != 720 || b.Left != -640 {
		t.Errorf("Bounds() = %+v; want a centered 1280x720 world", b)
	}
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "boids.json", `{
		"numBoids": 250,
		"seed": 7,
		"cohesionWeight": 0.2,
		"boundary": "soft-turn",
		"spatialGrid": true
	}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.NumBoids != 250 || cfg.Seed != 7 || cfg.CohesionWeight != 0.2 || !cfg.SpatialGrid {
		t.Errorf("LoadConfig() = %+v; overrides not applied", cfg)
	}
	if cfg.Settings().Boundary != flock.SoftTurn {
		t.Errorf("Boundary = %v; want soft-turn", cfg.Settings().Boundary)
	}
	// untouched keys keep their defaults
	if cfg.AlignmentWeight != 1 || cfg.WorldWidth != 1280 {
		t.Errorf("defaults lost: alignment=%v width=%v", cfg.AlignmentWeight, cfg.WorldWidth)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeConfig(t, "boids.toml", `
numBoids = 64
worldWidth = 800.0
worldHeight = 600.0
separationWeight = 1.5
maxCatchUpTicks = 3
boundary = "wrap"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.NumBoids != 64 || cfg.WorldWidth != 800 || cfg.WorldHeight != 600 || cfg.SeparationWeight != 1.5 || cfg.MaxCatchUpTicks != 3 {
		t.Errorf("LoadConfig() = %+v; overrides not applied", cfg)
	}
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"Unknown key", "a.json", `{"numBirds": 3}`},
		{"Wrong type", "b.json", `{"numBoids": "many"}`},
		{"Fractional count", "c.json", `{"numBoids": 2.5}`},
		{"Unknown boundary", "d.json", `{"boundary": "bounce"}`},
		{"Negative radius", "e.toml", `perceptionRadius = -1.0`},
		{"Broken json", "f.json", `{"numBoids": `},
		{"Broken toml", "g.toml", `numBoids = = 3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.file, tt.content)); err == nil {
				t.Error("LoadConfig() should fail")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) error = %v; want os.ErrNotExist", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Min above max velocity", func(c *Config) { c.MinVelocity, c.MaxVelocity = 4, 3 }},
		{"Zero width", func(c *Config) { c.WorldWidth = 0 }},
		{"Negative boids", func(c *Config) { c.NumBoids = -1 }},
		{"Zero tick", func(c *Config) { c.TickSeconds = 0 }},
		{"Bad boundary", func(c *Config) { c.Boundary = "bounce" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v; want ErrInvalidConfig", err)
			}
		})
	}

	// cross-field rule is enforced on load too
	path := writeConfig(t, "v.json", `{"minVelocity": 5, "maxVelocity": 2}`)
	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig() error = %v; want ErrInvalidConfig", err)
	}
}
