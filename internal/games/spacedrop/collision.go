package spacedrop

import (
	"github.com/vovakirdan/space-drop/internal/config"
)

// HitCause tells why a run ended.
type HitCause int

const (
	HitNone HitCause = iota
	HitObstacle
	HitBoundary
)

func (c HitCause) String() string {
	switch c {
	case HitObstacle:
		return "obstacle"
	case HitBoundary:
		return "boundary"
	default:
		return "none"
	}
}

// MarshalText encodes the cause by name.
func (c HitCause) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CollisionResult is the outcome of one Check.
type CollisionResult struct {
	Hit    bool
	Cause  HitCause
	PairID int        // Pair that was hit, when Cause is HitObstacle
	Passed []Obstacle // Bottom members newly passed this tick
}

// Check tests the craft against the screen bounds and every live obstacle.
// Overlap is strict: a hitbox that only touches an obstacle edge is safe.
// Pass-through is evaluated only when nothing was hit.
func Check(cfg config.SpaceDropConfig, craft Craft, field *Field) CollisionResult {
	margin := cfg.Collision.BoundaryMargin
	if craft.Pos.Y < -margin || craft.Pos.Y > cfg.World.Height+margin {
		return CollisionResult{Hit: true, Cause: HitBoundary}
	}

	hitbox := craft.Hitbox(cfg.Physics.CraftSize, cfg.Collision.HitboxMargin)
	for _, o := range field.Obstacles() {
		if hitbox.Overlaps(o.Box()) {
			return CollisionResult{Hit: true, Cause: HitObstacle, PairID: o.PairID}
		}
	}

	return CollisionResult{Passed: field.MarkPassed(craft.Pos.X)}
}
