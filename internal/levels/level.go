// Package levels provides per-level obstacle and spawn parameters and the
// repositories they are loaded from.
package levels

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for level lookups.
var (
	ErrLevelNotFound = errors.New("level not found")
	ErrInvalidLevel  = errors.New("invalid level")
)

// QuantumWeights are the relative spawn weights of quantum element variants.
type QuantumWeights struct {
	BlackHole float64 `yaml:"black_hole"`
	Aurora    float64 `yaml:"aurora"`
	Holocron  float64 `yaml:"holocron"`
}

// Total returns the sum of all weights.
func (w QuantumWeights) Total() float64 {
	return w.BlackHole + w.Aurora + w.Holocron
}

// LevelConfig holds the parameters of one level. Values are never mutated
// once handed to a session; progression builds a fresh value instead.
type LevelConfig struct {
	Number              int            `yaml:"level"`
	Name                string         `yaml:"name"`
	Background          string         `yaml:"background"`
	ObstacleSpeed       float64        `yaml:"obstacle_speed"`
	SpawnIntervalFrames int            `yaml:"spawn_interval"`
	GapSize             float64        `yaml:"gap_size"`
	InitialObstacles    int            `yaml:"initial_obstacles"`
	QuantumProbability  float64        `yaml:"quantum_probability"`
	QuantumWeights      QuantumWeights `yaml:"quantum_weights"`
	PowerUpChance       float64        `yaml:"powerup_chance"`
	PipeVariants        []string       `yaml:"pipe_variants"`
}

// Default returns the fallback level used whenever a requested level is
// missing or invalid.
func Default() LevelConfig {
	return LevelConfig{
		Number:              0,
		Name:                "Open Space",
		Background:          "space",
		ObstacleSpeed:       3,
		SpawnIntervalFrames: 100,
		GapSize:             180,
		InitialObstacles:    3,
		QuantumProbability:  0.01,
		QuantumWeights:      QuantumWeights{BlackHole: 1, Aurora: 1, Holocron: 0.25},
		PowerUpChance:       0.15,
		PipeVariants:        []string{"green"},
	}
}

// Clone returns a copy that shares no memory with l.
func (l LevelConfig) Clone() LevelConfig {
	l.PipeVariants = slices.Clone(l.PipeVariants)
	return l
}

// Validate reports whether the level can drive a session.
func (l LevelConfig) Validate() error {
	switch {
	case l.ObstacleSpeed <= 0:
		return fmt.Errorf("levels: level %d obstacle speed %v: %w", l.Number, l.ObstacleSpeed, ErrInvalidLevel)
	case l.SpawnIntervalFrames < 1:
		return fmt.Errorf("levels: level %d spawn interval %d: %w", l.Number, l.SpawnIntervalFrames, ErrInvalidLevel)
	case l.GapSize <= 0:
		return fmt.Errorf("levels: level %d gap %v: %w", l.Number, l.GapSize, ErrInvalidLevel)
	case l.InitialObstacles < 0:
		return fmt.Errorf("levels: level %d initial obstacles %d: %w", l.Number, l.InitialObstacles, ErrInvalidLevel)
	case l.QuantumProbability < 0 || l.QuantumProbability > 1:
		return fmt.Errorf("levels: level %d quantum probability %v: %w", l.Number, l.QuantumProbability, ErrInvalidLevel)
	case l.PowerUpChance < 0 || l.PowerUpChance > 1:
		return fmt.Errorf("levels: level %d power-up chance %v: %w", l.Number, l.PowerUpChance, ErrInvalidLevel)
	case l.QuantumWeights.BlackHole < 0 || l.QuantumWeights.Aurora < 0 || l.QuantumWeights.Holocron < 0:
		return fmt.Errorf("levels: level %d negative quantum weight: %w", l.Number, ErrInvalidLevel)
	}
	return nil
}

// Repository supplies level configurations by number.
type Repository interface {
	Level(n int) (LevelConfig, error)
}

// Chain queries repositories in order and returns the first hit.
type Chain []Repository

// Level implements Repository.
func (c Chain) Level(n int) (LevelConfig, error) {
	for _, repo := range c {
		if repo == nil {
			continue
		}
		cfg, err := repo.Level(n)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ErrLevelNotFound) {
			return LevelConfig{}, err
		}
	}
	return LevelConfig{}, fmt.Errorf("levels: level %d: %w", n, ErrLevelNotFound)
}
