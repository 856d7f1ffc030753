// Package config provides YAML-based game configuration loading and
// difficulty presets for the dodge games.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned (wrapped) when a configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// DamageMode selects how a collision reduces the player's health.
type DamageMode string

const (
	DamageHealth DamageMode = "health" // subtract the obstacle's damage value
	DamageLives  DamageMode = "lives"  // subtract one life per hit
)

// HitboxShape selects the player's collision approximation.
type HitboxShape string

const (
	HitboxCircle HitboxShape = "circle"
	HitboxBox    HitboxShape = "box"
)

// PointerMode selects the reference a pointer press is compared against.
type PointerMode string

const (
	PointerMidpoint PointerMode = "midpoint" // left/right half of the viewport
	PointerPlayer   PointerMode = "player"   // left/right of the player's center
)

// DodgeConfig contains all configuration for a dodge game variant.
// Distances are in world units (one terminal cell), speeds in units per second.
type DodgeConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Hitbox     HitboxConfig     `yaml:"hitbox"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Input      InputConfig      `yaml:"input"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// PlayerConfig defines the player's body and health.
type PlayerConfig struct {
	Size         float64    `yaml:"size"`
	Speed        float64    `yaml:"speed"`
	BottomMargin float64    `yaml:"bottom_margin"`
	MaxHealth    int        `yaml:"max_health"`
	DamageMode   DamageMode `yaml:"damage_mode"`
	HitFlashMS   int        `yaml:"hit_flash_ms"`
	StopAtEdges  bool       `yaml:"stop_at_edges"` // zero velocity when clamped at a wall
}

// HitboxConfig defines the player's effective collision shape.
type HitboxConfig struct {
	Shape   HitboxShape `yaml:"shape"`
	Scale   float64     `yaml:"scale"`    // radius (or half extent) as a fraction of player size
	CenterY float64     `yaml:"center_y"` // vertical center as a fraction of player size from the top
}

// ObstacleConfig defines obstacle geometry and which kinds may spawn.
type ObstacleConfig struct {
	BaseRadius       float64  `yaml:"base_radius"`
	Kinds            []string `yaml:"kinds"`
	MinRotationScale float64  `yaml:"min_rotation_scale"`
	MaxRotationScale float64  `yaml:"max_rotation_scale"`
}

// SpawnConfig defines the initial spawn interval and speed bounds.
type SpawnConfig struct {
	MinIntervalMS   float64 `yaml:"min_interval_ms"`
	MaxIntervalMS   float64 `yaml:"max_interval_ms"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// DifficultyConfig defines periodic escalation of the spawn parameters.
type DifficultyConfig struct {
	Enabled            bool    `yaml:"enabled"`
	IntervalMS         int     `yaml:"interval_ms"`
	SpawnDivisor       float64 `yaml:"spawn_divisor"`  // spawn interval bounds are divided by this
	SpeedFactor        float64 `yaml:"speed_factor"`   // speed bounds are multiplied by this
	SpawnFloorMS       float64 `yaml:"spawn_floor_ms"` // min spawn interval never drops below this
	SpawnMarginMS      float64 `yaml:"spawn_margin_ms"`
	SpeedCeiling       float64 `yaml:"speed_ceiling"`
	MinSpeedHeadroom   float64 `yaml:"min_speed_headroom"` // min speed stays this far under the ceiling
	SpeedMargin        float64 `yaml:"speed_margin"`
	InitialEscalations int     `yaml:"initial_escalations"`
}

// InputConfig defines how pointer presses become steering intents.
type InputConfig struct {
	PointerMode PointerMode `yaml:"pointer_mode"`
	DeadZone    float64     `yaml:"dead_zone"`
}

// SimulationConfig defines integration limits.
type SimulationConfig struct {
	MaxStepMS float64 `yaml:"max_step_ms"`
}

// HitFlash returns the hit-flash duration.
func (c PlayerConfig) HitFlash() time.Duration {
	return time.Duration(c.HitFlashMS) * time.Millisecond
}

// Interval returns the escalation cadence.
func (c DifficultyConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// MaxStep returns the largest dt a single tick may integrate.
func (c SimulationConfig) MaxStep() time.Duration {
	return Millis(c.MaxStepMS)
}

// Millis converts fractional milliseconds to a duration.
func Millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Validate checks for values the simulation cannot run with.
// Ranges that are merely inverted (min > max) are left to the
// difficulty scaler, which corrects them on every adjustment.
func (c DodgeConfig) Validate() error {
	switch {
	case c.Player.Size <= 0:
		return fmt.Errorf("%w: player.size must be positive", ErrInvalid)
	case c.Player.Speed < 0:
		return fmt.Errorf("%w: player.speed must not be negative", ErrInvalid)
	case c.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: player.max_health must be positive", ErrInvalid)
	case c.Player.HitFlashMS < 0:
		return fmt.Errorf("%w: player.hit_flash_ms must not be negative", ErrInvalid)
	case c.Player.DamageMode != DamageHealth && c.Player.DamageMode != DamageLives:
		return fmt.Errorf("%w: unknown player.damage_mode %q", ErrInvalid, c.Player.DamageMode)
	case c.Hitbox.Shape != HitboxCircle && c.Hitbox.Shape != HitboxBox:
		return fmt.Errorf("%w: unknown hitbox.shape %q", ErrInvalid, c.Hitbox.Shape)
	case c.Hitbox.Scale <= 0:
		return fmt.Errorf("%w: hitbox.scale must be positive", ErrInvalid)
	case c.Obstacles.BaseRadius <= 0:
		return fmt.Errorf("%w: obstacles.base_radius must be positive", ErrInvalid)
	case len(c.Obstacles.Kinds) == 0:
		return fmt.Errorf("%w: obstacles.kinds must not be empty", ErrInvalid)
	case c.Spawn.MinIntervalMS <= 0 || c.Spawn.MaxIntervalMS <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalid)
	case c.Spawn.MinSpeed <= 0 || c.Spawn.MaxSpeed <= 0:
		return fmt.Errorf("%w: spawn speeds must be positive", ErrInvalid)
	case c.Difficulty.Enabled && c.Difficulty.IntervalMS <= 0:
		return fmt.Errorf("%w: difficulty.interval_ms must be positive", ErrInvalid)
	case c.Input.PointerMode != PointerMidpoint && c.Input.PointerMode != PointerPlayer:
		return fmt.Errorf("%w: unknown input.pointer_mode %q", ErrInvalid, c.Input.PointerMode)
	case c.Simulation.MaxStepMS <= 0:
		return fmt.Errorf("%w: simulation.max_step_ms must be positive", ErrInvalid)
	}
	return nil
}
