package spacedrop

import "github.com/vovakirdan/space-drop/internal/config"

// SimResult summarizes one headless run.
type SimResult struct {
	Seed     int64    `json:"seed"`
	Score    int      `json:"score"`
	Tier     string   `json:"tier,omitempty"`
	Cause    HitCause `json:"cause"`
	Survived bool     `json:"survived"` // Reached maxTicks without crashing
	Stats    RunStats `json:"stats"`
}

// Simulate plays one run to game over, or for at most maxTicks, letting pilot
// fly. Listeners receive the run's events as in interactive play.
func Simulate(cfg config.SpaceDropConfig, seed int64, maxTicks int, pilot Autopilot, listeners ...Listener) SimResult {
	r := NewRun(cfg, seed)
	for _, l := range listeners {
		r.Subscribe(l)
	}

	r.Start()
	for i := 0; i < maxTicks && r.Phase() != PhaseGameOver; i++ {
		if pilot.ShouldJump(r.Snapshot(), cfg.World.Height) {
			r.Jump()
		}
		r.Tick()
	}

	s := r.Snapshot()
	res := SimResult{
		Seed:     seed,
		Score:    s.Score,
		Tier:     s.Tier,
		Survived: s.Phase != PhaseGameOver,
		Stats:    s.Stats,
	}
	if s.GameOver != nil {
		res.Cause = s.GameOver.Cause
	}
	return res
}
