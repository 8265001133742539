package config

import (
	_ "embed"
)

//go:embed defaults/starbird.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration. It mirrors the embedded
// defaults/starbird.yaml and is used when that file cannot be parsed.
func Default() Config {
	return Config{
		World: WorldConfig{Width: 800, Height: 600},
		Physics: PhysicsConfig{
			Gravity:           0.15,
			AirResistance:     0.99,
			MinVelocity:       -8,
			MaxVelocity:       8,
			FlapStrength:      -6,
			FlapVelocityScale: 0.1,
			FlapCooldown:      12,
			MaxDt:             3,
		},
		Player: PlayerConfig{
			StartX:              100,
			StartY:              300,
			Width:               60,
			Height:              36,
			Lives:               3,
			InvincibilityFrames: 120,
		},
		PowerUps: PowerUpConfig{
			ShieldDuration:        240,
			ShieldRecharge:        400,
			LightsaberDuration:    360,
			SlowdownDuration:      300,
			SlowdownAirResistance: 0.9,
			ShrinkDuration:        300,
			ShrinkFactor:          0.8,
			PickupSize:            30,
			ScoreBonus:            5,
		},
		Obstacles: ObstacleConfig{
			Width:          90,
			Margin:         50,
			InitialSpacing: 300,
		},
		Quantum: QuantumConfig{
			Speed:           5,
			BlackHoleRadius: 40,
			AuroraRadius:    50,
			HolocronSize:    40,
			AuroraBoost:     1.2,
			TeleportMargin:  50,
		},
		Events: EventsConfig{
			Training:          EventConfig{Probability: 0.0005, Cooldown: 1200},
			FactionChoice:     EventConfig{Probability: 0.002, Cooldown: 1900},
			Teleport:          EventConfig{Probability: 0.0005, Cooldown: 1800},
			CollectibleSpawn:  EventConfig{Probability: 0.0001, Cooldown: 3000},
			TrainingWindow:    180,
			TrainingPenalty:   1.5,
			FactionSpeedBoost: 1,
			TeleportMargin:    50,
		},
		Dispatcher: DispatcherConfig{Workers: 5, Queue: 32},
		Progression: ProgressionConfig{
			Enabled:          true,
			StartLevel:       1,
			LevelThreshold:   100,
			SpeedStep:        0.5,
			MaxObstacleSpeed: 12,
			IntervalStep:     10,
			MinSpawnInterval: 60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
