package spacedrop

import (
	"math"

	"github.com/vovakirdan/space-drop/internal/config"
)

// ScoreState is the externally visible score of a run.
type ScoreState struct {
	Score int    `json:"score"`
	Tier  string `json:"tier,omitempty"` // Highest achievement reached, empty before the first
}

// ScoreKeeper turns passes into points, unlocks achievement tiers and arms
// the breather gap.
type ScoreKeeper struct {
	scoring      config.ScoringConfig
	interval     int
	achievements []config.Achievement // Sorted by score

	state    ScoreState
	passes   int
	unlocked map[int]bool
	breather bool
}

// NewScoreKeeper creates a keeper for one run.
func NewScoreKeeper(scoring config.ScoringConfig, difficulty config.DifficultyConfig) *ScoreKeeper {
	k := &ScoreKeeper{
		scoring:      scoring,
		interval:     difficulty.BreatherInterval,
		achievements: scoring.SortedAchievements(),
	}
	k.Reset()
	return k
}

// Reset clears score, tiers and the breather flag.
func (k *ScoreKeeper) Reset() {
	k.state = ScoreState{}
	k.passes = 0
	k.unlocked = make(map[int]bool, len(k.achievements))
	k.breather = false
}

// State returns the current score and tier.
func (k *ScoreKeeper) State() ScoreState {
	return k.state
}

// Passes returns the number of pairs passed this run.
func (k *ScoreKeeper) Passes() int {
	return k.passes
}

// OnPass scores one passed pair. craftY is the craft center at the moment of
// pass-through and bottom is the pair's bottom member.
func (k *ScoreKeeper) OnPass(tick int, craftY float64, bottom Obstacle) []Event {
	k.passes++
	if k.interval > 0 && k.passes%k.interval == 0 {
		k.breather = true
	}

	points := 1
	var nearMiss *NearMissEvent
	if k.scoring.NearMissEnabled {
		top, bot := bottom.GapEdges()
		d := math.Min(math.Abs(craftY-top), math.Abs(craftY-bot))
		if d <= k.scoring.NearMissThreshold {
			points++
			nearMiss = &NearMissEvent{Tick: tick, PairID: bottom.PairID, Distance: d}
		}
	}

	old := k.state.Score
	k.state.Score += points

	events := []Event{PassEvent{Tick: tick, PairID: bottom.PairID, Score: k.state.Score}}
	if nearMiss != nil {
		nearMiss.Score = k.state.Score
		events = append(events, *nearMiss)
	}
	return append(events, k.unlock(tick, old, k.state.Score)...)
}

// Award adds points outside of a pass and reports any tiers crossed.
// Non-positive amounts are ignored so the score stays monotonic.
func (k *ScoreKeeper) Award(tick, points int) []Event {
	if points <= 0 {
		return nil
	}
	old := k.state.Score
	k.state.Score += points
	return k.unlock(tick, old, k.state.Score)
}

// unlock fires every tier with a threshold in (from, to] that has not fired
// yet this run. Checking the whole range means a tick that adds several
// points can never skip a tier.
func (k *ScoreKeeper) unlock(tick, from, to int) []Event {
	var events []Event
	for _, a := range k.achievements {
		if a.Score <= from || a.Score > to || k.unlocked[a.Score] {
			continue
		}
		k.unlocked[a.Score] = true
		k.state.Tier = a.Name
		events = append(events, AchievementEvent{Tick: tick, Threshold: a.Score, Name: a.Name, Score: to})
	}
	return events
}

// TakeBreather reports whether a breather is armed and disarms it.
func (k *ScoreKeeper) TakeBreather() bool {
	armed := k.breather
	k.breather = false
	return armed
}

// BreatherArmed reports whether the next spawned pair will be a breather.
func (k *ScoreKeeper) BreatherArmed() bool {
	return k.breather
}
