// Package config provides YAML-based game configuration loading and
// difficulty management for Run Rabbit.
package config

import (
	"errors"
	"fmt"
)

// RabbitConfig contains all tunables of a Run Rabbit session.
type RabbitConfig struct {
	Physics    RabbitPhysics    `yaml:"physics"`
	World      WorldConfig      `yaml:"world"`
	Rabbit     RabbitPlayer     `yaml:"rabbit"`
	Carrots    CarrotConfig     `yaml:"carrots"`
	Obstacles  LaneConfig       `yaml:"obstacles"`
	Pits       LaneConfig       `yaml:"pits"`
	Trees      TreeConfig       `yaml:"trees"`
	Fox        FoxConfig        `yaml:"fox"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RabbitPhysics defines the vertical motion of the rabbit.
// All distances are in normalized world units where the view spans [-1, 1].
type RabbitPhysics struct {
	GroundY      float64 `yaml:"ground_y"`
	Gravity      float64 `yaml:"gravity"` // added to velocity each tick, negative
	JumpImpulse  float64 `yaml:"jump_impulse"`
	RunPhaseStep float64 `yaml:"run_phase_step"`
}

// WorldConfig defines scrolling.
type WorldConfig struct {
	Speed           float64 `yaml:"speed"`
	TreeSpeedFactor float64 `yaml:"tree_speed_factor"`
	RecycleX        float64 `yaml:"recycle_x"`     // objects left of this are recycled
	VisibleRight    float64 `yaml:"visible_right"` // right edge of the view
}

// RabbitPlayer defines the rabbit's fixed column and collision radius.
type RabbitPlayer struct {
	X      float64 `yaml:"x"`
	Radius float64 `yaml:"radius"`
}

// Jitter is a random offset of Steps discrete values spaced Unit apart.
// A sample is rand(Steps) * Unit.
type Jitter struct {
	Steps int     `yaml:"steps"`
	Unit  float64 `yaml:"unit"`
}

// CarrotConfig defines carrot groups.
type CarrotConfig struct {
	Groups        int     `yaml:"groups"`
	MinGroupSize  int     `yaml:"min_group_size"`
	MaxGroupSize  int     `yaml:"max_group_size"`
	YOffset       float64 `yaml:"y_offset"`
	Size          float64 `yaml:"size"`
	Reward        int     `yaml:"reward"`
	SpawnX        float64 `yaml:"spawn_x"`
	Spacing       float64 `yaml:"spacing"`
	SpacingJitter Jitter  `yaml:"spacing_jitter"`
	GroupGap      float64 `yaml:"group_gap"`
	GapJitter     Jitter  `yaml:"gap_jitter"`
	RespawnX      float64 `yaml:"respawn_x"`
	RespawnJitter Jitter  `yaml:"respawn_jitter"`
}

// LaneConfig defines an evenly spaced pool of obstacles or pits.
type LaneConfig struct {
	Count         int     `yaml:"count"`
	SpawnX        float64 `yaml:"spawn_x"`
	Step          float64 `yaml:"step"`
	YOffset       float64 `yaml:"y_offset"`
	Size          float64 `yaml:"size"`
	RespawnX      float64 `yaml:"respawn_x"`
	RespawnJitter Jitter  `yaml:"respawn_jitter"`
}

// TreeConfig defines the background trees.
type TreeConfig struct {
	Count    int     `yaml:"count"`
	SpawnX   float64 `yaml:"spawn_x"`
	Step     float64 `yaml:"step"`
	Scale    float64 `yaml:"scale"`
	AltScale float64 `yaml:"alt_scale"` // added to every other tree
	WrapX    float64 `yaml:"wrap_x"`
}

// FoxConfig defines the chase.
type FoxConfig struct {
	YOffset        float64 `yaml:"y_offset"`
	SpeedFactor    float64 `yaml:"speed_factor"` // fraction of the current world speed
	ChaseTicks     int     `yaml:"chase_ticks"`
	StartX         float64 `yaml:"start_x"`
	RestX          float64 `yaml:"rest_x"`
	ApproachMargin float64 `yaml:"approach_margin"` // fox stops advancing this far behind the rabbit
	CatchMargin    float64 `yaml:"catch_margin"`    // fox catches the rabbit this close
	DriftFactor    float64 `yaml:"drift_factor"`    // idle return speed, fraction of world speed
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// Validate reports every field that would make the simulation meaningless.
func (c RabbitConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.Gravity < 0, "physics.gravity must be negative, got %v", c.Physics.Gravity)
	check(c.Physics.JumpImpulse > 0, "physics.jump_impulse must be positive, got %v", c.Physics.JumpImpulse)
	check(c.World.Speed > 0, "world.speed must be positive, got %v", c.World.Speed)
	check(c.World.RecycleX < -1, "world.recycle_x must be left of the view, got %v", c.World.RecycleX)
	check(c.Rabbit.Radius > 0, "rabbit.radius must be positive, got %v", c.Rabbit.Radius)

	check(c.Carrots.Groups > 0, "carrots.groups must be positive, got %d", c.Carrots.Groups)
	check(c.Carrots.MinGroupSize > 0, "carrots.min_group_size must be positive, got %d", c.Carrots.MinGroupSize)
	check(c.Carrots.MinGroupSize <= c.Carrots.MaxGroupSize,
		"carrots.min_group_size %d exceeds max_group_size %d", c.Carrots.MinGroupSize, c.Carrots.MaxGroupSize)
	check(c.Carrots.RespawnX > c.World.VisibleRight,
		"carrots.respawn_x must be ahead of the view, got %v", c.Carrots.RespawnX)

	lanes := []struct {
		name string
		lane LaneConfig
	}{{"obstacles", c.Obstacles}, {"pits", c.Pits}}
	for _, l := range lanes {
		check(l.lane.Count > 0, "%s.count must be positive, got %d", l.name, l.lane.Count)
		check(l.lane.Size > 0, "%s.size must be positive, got %v", l.name, l.lane.Size)
		check(l.lane.RespawnX > c.World.VisibleRight, "%s.respawn_x must be ahead of the view, got %v", l.name, l.lane.RespawnX)
	}

	check(c.Trees.Count >= 0, "trees.count must not be negative, got %d", c.Trees.Count)
	check(c.Fox.ChaseTicks > 0, "fox.chase_ticks must be positive, got %d", c.Fox.ChaseTicks)
	check(c.Fox.SpeedFactor > 0 && c.Fox.SpeedFactor < 1,
		"fox.speed_factor must be in (0, 1), got %v", c.Fox.SpeedFactor)

	for _, j := range []Jitter{c.Carrots.SpacingJitter, c.Carrots.GapJitter, c.Carrots.RespawnJitter,
		c.Obstacles.RespawnJitter, c.Pits.RespawnJitter} {
		check(j.Steps >= 0, "jitter steps must not be negative, got %d", j.Steps)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid rabbit config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a name to a preset. The empty string yields "" with no error.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
