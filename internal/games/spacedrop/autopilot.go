package spacedrop

// Autopilot is a simple scripted pilot used by the headless simulator and
// tests. It fires the thrusters when the craft is falling below the center
// of the next gap.
type Autopilot struct {
	Slack float64 // Distance below the gap center tolerated before jumping
}

// ShouldJump decides whether to jump for the given state.
func (a Autopilot) ShouldJump(s Snapshot, worldH float64) bool {
	if s.Phase != PhaseRunning || s.Craft.Vel.Y < 0 {
		return false
	}
	target := worldH / 2
	if next, ok := nextGap(s); ok {
		top, bottom := next.GapEdges()
		target = (top + bottom) / 2
	}
	return s.Craft.Pos.Y > target+a.Slack
}

// nextGap returns the bottom member of the nearest pair still ahead of the craft.
func nextGap(s Snapshot) (Obstacle, bool) {
	var best Obstacle
	found := false
	for _, o := range s.Obstacles {
		if o.IsTop || o.Passed {
			continue
		}
		if !found || o.Pos.X < best.Pos.X {
			best = o
			found = true
		}
	}
	return best, found
}
