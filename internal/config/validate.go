package config

import (
	"errors"
	"fmt"
	"sort"
)

// Validate reports configuration values that would break the simulation
// invariants (impossible gaps, collapsed hitboxes, unbounded curves).
func (c SpaceDropConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: "+format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive, got %gx%g", c.World.Width, c.World.Height)

	p := c.Physics
	check(p.Gravity >= 0, "physics.gravity must not be negative")
	check(p.JumpPower > 0, "physics.jump_power must be positive")
	check(p.MaxVelocityY > 0, "physics.max_velocity_y must be positive")
	check(p.CraftSize > 0, "physics.craft_size must be positive")
	check(p.MaxTilt >= 0, "physics.max_tilt must not be negative")
	check(p.RotationLerp > 0 && p.RotationLerp <= 1, "physics.rotation_lerp must be in (0, 1], got %g", p.RotationLerp)

	o := c.Obstacles
	check(o.Width > 0, "obstacles.width must be positive")
	check(o.ScrollSpeed > 0, "obstacles.scroll_speed must be positive")
	check(o.MinSpawnDistance > 0, "obstacles.min_spawn_distance must be positive")
	check(o.EdgeMargin >= 0, "obstacles.edge_margin must not be negative")

	d := c.Difficulty
	check(d.VelocityGainPerPoint >= 0, "difficulty.velocity_gain_per_point must not be negative")
	check(d.MaxSpeedMultiplier >= 1, "difficulty.max_speed_multiplier must be at least 1")
	check(d.GapTighteningPerPoint >= 0, "difficulty.gap_tightening_per_point must not be negative")
	check(d.MaxGapTightening >= 0, "difficulty.max_gap_tightening must not be negative")
	check(d.BreatherInterval >= 0, "difficulty.breather_interval must not be negative")
	check(d.BreatherBonus >= 0, "difficulty.breather_bonus must not be negative")

	check(o.BaseGap-d.MaxGapTightening > 0,
		"tightest gap (base_gap %g - max_gap_tightening %g) must stay positive", o.BaseGap, d.MaxGapTightening)
	widest := o.BaseGap + d.BreatherBonus
	check(widest+2*o.EdgeMargin <= c.World.Height,
		"widest gap %g plus two edge margins %g does not fit world height %g", widest, o.EdgeMargin, c.World.Height)

	col := c.Collision
	check(col.HitboxMargin >= 0 && col.HitboxMargin < p.CraftSize/2,
		"collision.hitbox_margin must be in [0, craft_size/2), got %g", col.HitboxMargin)
	check(col.BoundaryMargin >= 0, "collision.boundary_margin must not be negative")

	s := c.Scoring
	check(s.NearMissThreshold >= 0, "scoring.near_miss_threshold must not be negative")
	seen := make(map[int]bool, len(s.Achievements))
	for _, a := range s.Achievements {
		check(a.Score > 0, "achievement %q needs a positive score", a.Name)
		check(a.Name != "", "achievement at score %d needs a name", a.Score)
		check(!seen[a.Score], "duplicate achievement score %d", a.Score)
		seen[a.Score] = true
	}

	return errors.Join(errs...)
}

// SortedAchievements returns the tiers ordered by score.
func (s ScoringConfig) SortedAchievements() []Achievement {
	out := make([]Achievement, len(s.Achievements))
	copy(out, s.Achievements)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}
