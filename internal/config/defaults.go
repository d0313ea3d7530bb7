package config

import (
	_ "embed"
)

//go:embed defaults/rabbit.yaml
var defaultRabbitYAML []byte

// DefaultRabbitConfig returns the built-in Run Rabbit configuration.
// It mirrors defaults/rabbit.yaml and is used when the embedded file cannot be parsed.
func DefaultRabbitConfig() RabbitConfig {
	return RabbitConfig{
		Physics: RabbitPhysics{
			GroundY:      -0.7,
			Gravity:      -0.0018,
			JumpImpulse:  0.045,
			RunPhaseStep: 0.25,
		},
		World: WorldConfig{
			Speed:           0.012,
			TreeSpeedFactor: 0.3,
			RecycleX:        -1.2,
			VisibleRight:    1.0,
		},
		Rabbit: RabbitPlayer{
			X:      -0.7,
			Radius: 0.06,
		},
		Carrots: CarrotConfig{
			Groups:        5,
			MinGroupSize:  1,
			MaxGroupSize:  4,
			YOffset:       0.05,
			Size:          0.05,
			Reward:        10,
			SpawnX:        1.5,
			Spacing:       0.04,
			SpacingJitter: Jitter{Steps: 3, Unit: 0.01},
			GroupGap:      0.5,
			GapJitter:     Jitter{Steps: 3, Unit: 0.1},
			RespawnX:      2.0,
			RespawnJitter: Jitter{Steps: 100, Unit: 0.02},
		},
		Obstacles: LaneConfig{
			Count:         5,
			SpawnX:        2.5,
			Step:          1.8,
			YOffset:       0.05,
			Size:          0.07,
			RespawnX:      2.5,
			RespawnJitter: Jitter{Steps: 100, Unit: 0.02},
		},
		Pits: LaneConfig{
			Count:         5,
			SpawnX:        3.0,
			Step:          2.0,
			YOffset:       0,
			Size:          0.08,
			RespawnX:      3.0,
			RespawnJitter: Jitter{Steps: 100, Unit: 0.02},
		},
		Trees: TreeConfig{
			Count:    5,
			SpawnX:   -1.0,
			Step:     0.8,
			Scale:    0.8,
			AltScale: 0.3,
			WrapX:    1.2,
		},
		Fox: FoxConfig{
			YOffset:        0.05,
			SpeedFactor:    0.8,
			ChaseTicks:     300,
			StartX:         -0.9,
			RestX:          -0.9,
			ApproachMargin: 0.1,
			CatchMargin:    0.05,
			DriftFactor:    0.2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRabbitYAML
}
