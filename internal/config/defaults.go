package config

import (
	_ "embed"
)

//go:embed defaults/spacedrop.yaml
var defaultSpaceDropYAML []byte

// DefaultSpaceDropConfig returns the built-in configuration.
// It mirrors defaults/spacedrop.yaml.
func DefaultSpaceDropConfig() SpaceDropConfig {
	return SpaceDropConfig{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:         0.4,
			JumpPower:       8,
			MaxVelocityY:    10,
			CraftSize:       30,
			RotationGain:    0.05,
			MaxTilt:         0.5,
			RotationLerp:    0.2,
			InitialRotation: -0.3,
		},
		Obstacles: ObstacleConfig{
			Width:            60,
			ScrollSpeed:      2,
			BaseGap:          200,
			MinSpawnDistance: 300,
			EdgeMargin:       100,
		},
		Difficulty: DifficultyConfig{
			VelocityGainPerPoint:  0.1,
			MaxSpeedMultiplier:    3,
			GapTighteningPerPoint: 2,
			MaxGapTightening:      60,
			BreatherInterval:      7,
			BreatherBonus:         50,
		},
		Scoring: ScoringConfig{
			NearMissEnabled:   true,
			NearMissThreshold: 25,
			Achievements: []Achievement{
				{Score: 10, Name: "Cadet"},
				{Score: 25, Name: "Pilot"},
				{Score: 50, Name: "Ace"},
				{Score: 100, Name: "Legend"},
			},
		},
		Collision: CollisionConfig{
			HitboxMargin:   5,
			BoundaryMargin: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSpaceDropYAML
}
