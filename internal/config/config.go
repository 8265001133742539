// Package config provides YAML-based game configuration loading and
// difficulty management for Starbird.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunables of a Starbird session. It is treated as an
// immutable value once a session has been constructed.
type Config struct {
	World       WorldConfig       `yaml:"world"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Player      PlayerConfig      `yaml:"player"`
	PowerUps    PowerUpConfig     `yaml:"powerups"`
	Obstacles   ObstacleConfig    `yaml:"obstacles"`
	Quantum     QuantumConfig     `yaml:"quantum"`
	Events      EventsConfig      `yaml:"events"`
	Dispatcher  DispatcherConfig  `yaml:"dispatcher"`
	Progression ProgressionConfig `yaml:"progression"`
}

// WorldConfig defines the playfield size in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the vertical motion model. Rates are per tick.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	AirResistance     float64 `yaml:"air_resistance"`
	MinVelocity       float64 `yaml:"min_velocity"`
	MaxVelocity       float64 `yaml:"max_velocity"`
	FlapStrength      float64 `yaml:"flap_strength"`
	FlapVelocityScale float64 `yaml:"flap_velocity_scale"` // Flap gets stronger with |velocity|
	FlapCooldown      float64 `yaml:"flap_cooldown"`
	MaxDt             float64 `yaml:"max_dt"` // Upper bound for a single step, in ticks
}

// PlayerConfig defines the player's body.
type PlayerConfig struct {
	StartX              float64 `yaml:"start_x"`
	StartY              float64 `yaml:"start_y"`
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	Lives               int     `yaml:"lives"`
	InvincibilityFrames float64 `yaml:"invincibility_frames"`
}

// PowerUpConfig defines durations and magnitudes of timed power-ups.
type PowerUpConfig struct {
	ShieldDuration        float64 `yaml:"shield_duration"`
	ShieldRecharge        float64 `yaml:"shield_recharge"`
	LightsaberDuration    float64 `yaml:"lightsaber_duration"`
	SlowdownDuration      float64 `yaml:"slowdown_duration"`
	SlowdownAirResistance float64 `yaml:"slowdown_air_resistance"`
	ShrinkDuration        float64 `yaml:"shrink_duration"`
	ShrinkFactor          float64 `yaml:"shrink_factor"`
	PickupSize            float64 `yaml:"pickup_size"`
	ScoreBonus            int     `yaml:"score_bonus"`
}

// ObstacleConfig defines pipe geometry shared by all levels.
type ObstacleConfig struct {
	Width          float64 `yaml:"width"`
	Margin         int     `yaml:"margin"` // Minimum top/bottom pipe height
	InitialSpacing float64 `yaml:"initial_spacing"`
}

// QuantumConfig defines quantum element shapes and effects.
type QuantumConfig struct {
	Speed           float64 `yaml:"speed"`
	BlackHoleRadius float64 `yaml:"black_hole_radius"`
	AuroraRadius    float64 `yaml:"aurora_radius"`
	HolocronSize    float64 `yaml:"holocron_size"`
	AuroraBoost     float64 `yaml:"aurora_boost"`
	TeleportMargin  float64 `yaml:"teleport_margin"`
}

// EventConfig is the gate of a single random event.
type EventConfig struct {
	Probability float64 `yaml:"probability"` // Chance per eligible tick
	Cooldown    float64 `yaml:"cooldown"`    // Ticks before the event may fire again
}

// EventsConfig defines the random events and their mechanics.
type EventsConfig struct {
	Training          EventConfig `yaml:"training"`
	FactionChoice     EventConfig `yaml:"faction_choice"`
	Teleport          EventConfig `yaml:"teleport"`
	CollectibleSpawn  EventConfig `yaml:"collectible_spawn"`
	TrainingWindow    float64     `yaml:"training_window"`
	TrainingPenalty   float64     `yaml:"training_penalty"` // Multiplier of gravity added on failure
	FactionSpeedBoost float64     `yaml:"faction_speed_boost"`
	TeleportMargin    float64     `yaml:"teleport_margin"`
}

// DispatcherConfig sizes the effect worker pool.
type DispatcherConfig struct {
	Workers int `yaml:"workers"`
	Queue   int `yaml:"queue"`
}

// ProgressionConfig defines level advancement and difficulty scaling.
type ProgressionConfig struct {
	Enabled          bool    `yaml:"enabled"`
	StartLevel       int     `yaml:"start_level"`
	LevelThreshold   int     `yaml:"level_threshold"`
	SpeedStep        float64 `yaml:"speed_step"`
	MaxObstacleSpeed float64 `yaml:"max_obstacle_speed"`
	IntervalStep     int     `yaml:"interval_step"`
	MinSpawnInterval int     `yaml:"min_spawn_interval"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable session.
func (c Config) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size %vx%v: %w", c.World.Width, c.World.Height, ErrInvalidConfig)
	case c.Physics.MinVelocity >= c.Physics.MaxVelocity:
		return fmt.Errorf("config: velocity range [%v, %v]: %w", c.Physics.MinVelocity, c.Physics.MaxVelocity, ErrInvalidConfig)
	case c.Physics.AirResistance <= 0 || c.Physics.AirResistance > 1:
		return fmt.Errorf("config: air resistance %v: %w", c.Physics.AirResistance, ErrInvalidConfig)
	case c.Physics.MaxDt <= 0:
		return fmt.Errorf("config: max_dt %v: %w", c.Physics.MaxDt, ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: player size %vx%v: %w", c.Player.Width, c.Player.Height, ErrInvalidConfig)
	case c.Player.Height >= c.World.Height:
		return fmt.Errorf("config: player taller than world: %w", ErrInvalidConfig)
	case c.Player.Lives < 1:
		return fmt.Errorf("config: lives %d: %w", c.Player.Lives, ErrInvalidConfig)
	case c.Obstacles.Width <= 0:
		return fmt.Errorf("config: obstacle width %v: %w", c.Obstacles.Width, ErrInvalidConfig)
	case c.Dispatcher.Workers < 1 || c.Dispatcher.Queue < 1:
		return fmt.Errorf("config: dispatcher %d workers, queue %d: %w", c.Dispatcher.Workers, c.Dispatcher.Queue, ErrInvalidConfig)
	case c.Progression.LevelThreshold < 1:
		return fmt.Errorf("config: level threshold %d: %w", c.Progression.LevelThreshold, ErrInvalidConfig)
	case c.Progression.StartLevel < 1:
		return fmt.Errorf("config: start level %d: %w", c.Progression.StartLevel, ErrInvalidConfig)
	}

	events := map[string]EventConfig{
		"training":          c.Events.Training,
		"faction_choice":    c.Events.FactionChoice,
		"teleport":          c.Events.Teleport,
		"collectible_spawn": c.Events.CollectibleSpawn,
	}
	for name, ev := range events {
		if ev.Probability < 0 || ev.Probability > 1 || ev.Cooldown < 0 {
			return fmt.Errorf("config: event %s: %w", name, ErrInvalidConfig)
		}
	}
	return nil
}
