package spacedrop

import (
	"math"

	"github.com/vovakirdan/space-drop/internal/config"
)

// Curve is the difficulty derived from the current score.
// It is a pure function of the score and never stored between ticks.
type Curve struct {
	SpeedMultiplier float64 // Factor applied to the base scroll speed
	GapDelta        float64 // Amount subtracted from the base gap
}

// CurveAt computes the difficulty for a score.
// Both components are monotonically non-decreasing in score and clamped.
func CurveAt(d config.DifficultyConfig, score int) Curve {
	s := float64(score)
	return Curve{
		SpeedMultiplier: math.Min(1+s*d.VelocityGainPerPoint, d.MaxSpeedMultiplier),
		GapDelta:        math.Min(s*d.GapTighteningPerPoint, d.MaxGapTightening),
	}
}

// ScrollSpeed returns the effective world scroll per tick.
func (c Curve) ScrollSpeed(o config.ObstacleConfig) float64 {
	return o.ScrollSpeed * c.SpeedMultiplier
}

// Gap returns the tightened corridor height.
func (c Curve) Gap(o config.ObstacleConfig) float64 {
	return o.BaseGap - c.GapDelta
}

// BreatherGap returns the widened corridor used for a breather pair.
// It replaces the tightened gap instead of adding to it.
func BreatherGap(o config.ObstacleConfig, d config.DifficultyConfig) float64 {
	return o.BaseGap + d.BreatherBonus
}
