package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Progression.Enabled = preset != DifficultyFixed

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Progression.SpeedStep /= 2
		cfg.PowerUps.ShieldRecharge *= 0.75
	case DifficultyHard:
		cfg.Player.Lives = 1
		cfg.Progression.StartLevel = max(cfg.Progression.StartLevel, 2)
		cfg.Progression.SpeedStep *= 1.5
	}
}

// DifficultyManager computes level milestones and how obstacle speed and
// spawn cadence tighten from one level to the next.
type DifficultyManager struct {
	cfg ProgressionConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg ProgressionConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether level progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.LevelThreshold > 0
}

// Threshold returns the score distance between levels.
func (d *DifficultyManager) Threshold() int {
	return d.cfg.LevelThreshold
}

// Milestone returns how many thresholds the score has reached.
func (d *DifficultyManager) Milestone(score int) int {
	if d.cfg.LevelThreshold <= 0 || score <= 0 {
		return 0
	}
	return score / d.cfg.LevelThreshold
}

// Speed returns the obstacle speed for the next level: at least one step
// faster than the previous level, never above the configured cap.
func (d *DifficultyManager) Speed(prev, next float64) float64 {
	speed := math.Max(next, prev+d.cfg.SpeedStep)
	if d.cfg.MaxObstacleSpeed > 0 {
		speed = math.Min(speed, d.cfg.MaxObstacleSpeed)
	}
	return speed
}

// SpawnInterval returns the spawn interval for the next level: at least
// one step shorter than the previous level, never below the floor.
func (d *DifficultyManager) SpawnInterval(prev, next int) int {
	interval := min(next, prev-d.cfg.IntervalStep)
	floor := max(d.cfg.MinSpawnInterval, 1)
	if interval < floor {
		interval = floor
	}
	return interval
}
