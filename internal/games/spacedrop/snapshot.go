package spacedrop

import "slices"

// Snapshot is a deep copy of a run's observable state. It shares no memory
// with the run and may be handed to other goroutines.
type Snapshot struct {
	Tick      int            `json:"tick"`
	Phase     Phase          `json:"phase"`
	Craft     Craft          `json:"craft"`
	Obstacles []Obstacle     `json:"obstacles"`
	Score     int            `json:"score"`
	Tier      string         `json:"tier,omitempty"`
	Speed     float64        `json:"speed"` // Speed multiplier for the current score
	Breather  bool           `json:"breather"`
	Stats     RunStats       `json:"stats"`
	GameOver  *GameOverEvent `json:"game_over,omitempty"`
}

// Snapshot returns the current observable state.
func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.score.State()
	s := Snapshot{
		Tick:      r.tick,
		Phase:     r.phase,
		Craft:     r.craft,
		Obstacles: slices.Clone(r.field.Obstacles()),
		Score:     st.Score,
		Tier:      st.Tier,
		Speed:     CurveAt(r.cfg.Difficulty, st.Score).SpeedMultiplier,
		Breather:  r.score.BreatherArmed(),
		Stats:     r.stats,
	}
	if r.gameOver != nil {
		ev := *r.gameOver
		s.GameOver = &ev
	}
	return s
}
