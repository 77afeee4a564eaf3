package spacedrop

import (
	"slices"
	"sync"

	"github.com/vovakirdan/space-drop/internal/core"
)

// Event is a one-shot notification emitted by a Run tick.
// The set of events is closed; listeners switch on the concrete type.
type Event interface {
	core.Event
	runEvent()
}

// PassEvent is emitted once when the craft clears an obstacle pair.
type PassEvent struct {
	Tick   int `json:"tick"`
	PairID int `json:"pair_id"`
	Score  int `json:"score"`
}

func (PassEvent) runEvent()         {}
func (PassEvent) EventName() string { return "pass" }

// NearMissEvent is emitted when a pass cleared a gap edge within the threshold.
type NearMissEvent struct {
	Tick     int     `json:"tick"`
	PairID   int     `json:"pair_id"`
	Distance float64 `json:"distance"`
	Score    int     `json:"score"`
}

func (NearMissEvent) runEvent()         {}
func (NearMissEvent) EventName() string { return "near_miss" }

// AchievementEvent is emitted the first time a tier threshold is reached in a run.
type AchievementEvent struct {
	Tick      int    `json:"tick"`
	Threshold int    `json:"threshold"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
}

func (AchievementEvent) runEvent()         {}
func (AchievementEvent) EventName() string { return "achievement" }

// GameOverEvent is emitted exactly once when a run ends.
type GameOverEvent struct {
	Tick   int      `json:"tick"`
	Cause  HitCause `json:"cause"`
	PairID int      `json:"pair_id,omitempty"`
	Score  int      `json:"score"`
	Tier   string   `json:"tier,omitempty"`
	Stats  RunStats `json:"stats"`
}

func (GameOverEvent) runEvent()         {}
func (GameOverEvent) EventName() string { return "game_over" }

// Listener receives events after the tick that produced them has completed.
// Listeners run on the ticking goroutine and must not block.
type Listener func(Event)

// dispatcher is the listener registry owned by a Run.
// Listeners are called in subscription order.
type dispatcher struct {
	mu        sync.RWMutex
	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// add registers l and returns a function that removes it.
func (d *dispatcher) add(l Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.listeners = append(d.listeners, subscription{id: id, fn: l})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.listeners = slices.DeleteFunc(d.listeners, func(s subscription) bool {
			return s.id == id
		})
	}
}

func (d *dispatcher) dispatch(events []Event) {
	if len(events) == 0 {
		return
	}

	d.mu.RLock()
	subs := slices.Clone(d.listeners)
	d.mu.RUnlock()

	for _, ev := range events {
		for _, s := range subs {
			s.fn(ev)
		}
	}
}
