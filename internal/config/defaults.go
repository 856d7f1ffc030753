package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

// DefaultDodgeConfig returns the Shape Dodge configuration.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		Player: PlayerConfig{
			Size:         3,
			Speed:        40,
			BottomMargin: 1,
			MaxHealth:    100,
			DamageMode:   DamageHealth,
			HitFlashMS:   200,
			StopAtEdges:  true,
		},
		Hitbox: HitboxConfig{
			Shape:   HitboxCircle,
			Scale:   0.45,
			CenterY: 0.6,
		},
		Obstacles: ObstacleConfig{
			BaseRadius:       1.0,
			Kinds:            []string{"circle", "triangle", "square", "pentagon", "hexagon"},
			MinRotationScale: 0.75,
			MaxRotationScale: 1.25,
		},
		Spawn: SpawnConfig{
			MinIntervalMS:   100,
			MaxIntervalMS:   750,
			MinSpeed:        6,
			MaxSpeed:        24,
			SpeedMultiplier: 1.0,
		},
		Difficulty: defaultDifficulty(true),
		Input: InputConfig{
			PointerMode: PointerMidpoint,
		},
		Simulation: SimulationConfig{
			MaxStepMS: 1000.0 / 30.0,
		},
	}
}

// DefaultClassicConfig returns the Classic Dodge configuration.
func DefaultClassicConfig() DodgeConfig {
	return DodgeConfig{
		Player: PlayerConfig{
			Size:         2,
			Speed:        30,
			BottomMargin: 1,
			MaxHealth:    5,
			DamageMode:   DamageLives,
			HitFlashMS:   200,
		},
		Hitbox: HitboxConfig{
			Shape:   HitboxBox,
			Scale:   0.5,
			CenterY: 0.5,
		},
		Obstacles: ObstacleConfig{
			BaseRadius:       1.0,
			Kinds:            []string{"circle"},
			MinRotationScale: 1.0,
			MaxRotationScale: 1.0,
		},
		Spawn: SpawnConfig{
			MinIntervalMS:   1200,
			MaxIntervalMS:   1200,
			MinSpeed:        12,
			MaxSpeed:        12,
			SpeedMultiplier: 1.0,
		},
		Difficulty: defaultDifficulty(false),
		Input: InputConfig{
			PointerMode: PointerMidpoint,
		},
		Simulation: SimulationConfig{
			MaxStepMS: 1000.0 / 30.0,
		},
	}
}

func defaultDifficulty(enabled bool) DifficultyConfig {
	return DifficultyConfig{
		Enabled:          enabled,
		IntervalMS:       15000,
		SpawnDivisor:     1.1,
		SpeedFactor:      1.075,
		SpawnFloorMS:     40,
		SpawnMarginMS:    30,
		SpeedCeiling:     90,
		MinSpeedHeadroom: 7.5,
		SpeedMargin:      1.5,
	}
}
