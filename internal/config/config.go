// Package config provides YAML-based configuration loading, difficulty
// presets and validation for Space Drop.
package config

// SpaceDropConfig holds every balancing constant of the simulation.
// Changing a value here never requires touching algorithm code.
type SpaceDropConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Collision  CollisionConfig  `yaml:"collision"`
}

// WorldConfig is the size of the logical playfield in world units.
// Renderers scale it to whatever surface they draw on.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines craft kinematics.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`          // Added to velocity.y every tick
	JumpPower       float64 `yaml:"jump_power"`       // Jump sets velocity.y to -JumpPower
	MaxVelocityY    float64 `yaml:"max_velocity_y"`   // Terminal fall speed
	CraftSize       float64 `yaml:"craft_size"`       // Visual square size
	RotationGain    float64 `yaml:"rotation_gain"`    // Radians of tilt per unit of velocity.y
	MaxTilt         float64 `yaml:"max_tilt"`         // Absolute tilt limit (radians)
	RotationLerp    float64 `yaml:"rotation_lerp"`    // Smoothing factor in (0, 1]
	InitialRotation float64 `yaml:"initial_rotation"` // Tilt at run start
}

// ObstacleConfig defines obstacle geometry and spawning.
type ObstacleConfig struct {
	Width            float64 `yaml:"width"`
	ScrollSpeed      float64 `yaml:"scroll_speed"`       // Base world scroll per tick
	BaseGap          float64 `yaml:"base_gap"`           // Corridor height at score 0
	MinSpawnDistance float64 `yaml:"min_spawn_distance"` // Horizontal spacing between pairs
	EdgeMargin       float64 `yaml:"edge_margin"`        // Minimum visible height of each segment
}

// DifficultyConfig defines how the world tightens as score rises.
type DifficultyConfig struct {
	VelocityGainPerPoint  float64 `yaml:"velocity_gain_per_point"`
	MaxSpeedMultiplier    float64 `yaml:"max_speed_multiplier"`
	GapTighteningPerPoint float64 `yaml:"gap_tightening_per_point"`
	MaxGapTightening      float64 `yaml:"max_gap_tightening"`
	BreatherInterval      int     `yaml:"breather_interval"` // Every Nth pass widens the next gap; 0 disables
	BreatherBonus         float64 `yaml:"breather_bonus"`
}

// ScoringConfig defines bonus points and achievement tiers.
type ScoringConfig struct {
	NearMissEnabled   bool          `yaml:"near_miss_enabled"`
	NearMissThreshold float64       `yaml:"near_miss_threshold"`
	Achievements      []Achievement `yaml:"achievements"`
}

// Achievement is a named tier unlocked the first time score reaches Score.
type Achievement struct {
	Score int    `yaml:"score"`
	Name  string `yaml:"name"`
}

// CollisionConfig defines hitbox forgiveness and screen bounds tolerance.
type CollisionConfig struct {
	HitboxMargin   float64 `yaml:"hitbox_margin"`
	BoundaryMargin float64 `yaml:"boundary_margin"`
}
