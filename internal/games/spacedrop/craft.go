package spacedrop

import (
	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/core"
)

// Craft is the player-controlled body. Pos is the center of the craft.
// Horizontal position is fixed; only the world scrolls.
type Craft struct {
	Pos      core.Vec2 `json:"pos"`
	Vel      core.Vec2 `json:"vel"`
	Rotation float64   `json:"rotation"` // Radians, negative tilts nose up
}

// NewCraft places a craft at the center of the world with an initial upward kick.
func NewCraft(cfg config.SpaceDropConfig) Craft {
	return Craft{
		Pos:      core.Vec2{X: cfg.World.Width / 2, Y: cfg.World.Height / 2},
		Vel:      core.Vec2{Y: -cfg.Physics.JumpPower},
		Rotation: cfg.Physics.InitialRotation,
	}
}

// Integrate advances the craft by one tick.
// Gravity is applied before the clamp, so velocity.y never exceeds MaxVelocityY.
func (c *Craft) Integrate(p config.PhysicsConfig) {
	c.Vel.Y += p.Gravity
	if c.Vel.Y > p.MaxVelocityY {
		c.Vel.Y = p.MaxVelocityY
	}
	c.Pos = c.Pos.Add(core.Vec2{Y: c.Vel.Y})

	target := core.ClampF(c.Vel.Y*p.RotationGain, -p.MaxTilt, p.MaxTilt)
	c.Rotation += (target - c.Rotation) * p.RotationLerp
}

// Jump overrides the vertical velocity. It is not additive, so spamming
// jump cannot exceed a single impulse.
func (c *Craft) Jump(p config.PhysicsConfig) {
	c.Vel.Y = -p.JumpPower
}

// Hitbox returns the collision box: the visual square shrunk by margin on every side.
func (c Craft) Hitbox(size, margin float64) core.Box {
	half := size/2 - margin
	if half < 0 {
		half = 0
	}
	return core.BoxAround(c.Pos, half, half)
}
