package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML and Default() differ:\n%+v\n%+v", cfg, Default())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.3\nplayer:\n  lives: 7\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Physics.Gravity != 0.3 {
		t.Errorf("Gravity = %v, expected 0.3", cfg.Physics.Gravity)
	}
	if cfg.Player.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Player.Lives)
	}
	if cfg.Physics.MaxVelocity != Default().Physics.MaxVelocity {
		t.Errorf("MaxVelocity = %v, expected default", cfg.Physics.MaxVelocity)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero world", func(c *Config) { c.World.Width = 0 }},
		{"inverted velocity", func(c *Config) { c.Physics.MinVelocity = 10 }},
		{"no air resistance", func(c *Config) { c.Physics.AirResistance = 0 }},
		{"no lives", func(c *Config) { c.Player.Lives = 0 }},
		{"no workers", func(c *Config) { c.Dispatcher.Workers = 0 }},
		{"zero threshold", func(c *Config) { c.Progression.LevelThreshold = 0 }},
		{"probability above one", func(c *Config) { c.Events.Teleport.Probability = 1.5 }},
		{"negative cooldown", func(c *Config) { c.Events.Training.Cooldown = -1 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, expected nil", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("world:\n  width: 1024\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.World.Width != 1024 {
		t.Errorf("World.Width = %v, expected 1024", cfg.World.Width)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg != Default() {
		t.Error("Marshal/Parse changed the configuration")
	}
}
