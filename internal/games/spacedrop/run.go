// Package spacedrop implements the Space Drop simulation: a craft falling
// under gravity through an endless stream of obstacle pairs.
//
// A Run owns all simulation state. Platforms queue commands with Start, Jump
// and Pause, advance the simulation with Tick and read it back with Snapshot.
// Side effects such as sound, haptics or persistence subscribe to events.
package spacedrop

import (
	"sync"

	"github.com/vovakirdan/space-drop/internal/config"
)

// distancePerSpeed converts scroll speed to travelled distance per tick.
const distancePerSpeed = 0.1

// Phase is the lifecycle state of a run.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "Ready"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// RunStats accumulates per-run counters for the scoreboard.
type RunStats struct {
	Ticks      int     `json:"ticks"`
	Distance   float64 `json:"distance"`
	Passes     int     `json:"passes"`
	NearMisses int     `json:"near_misses"`
}

type command int

const (
	cmdStart command = iota
	cmdJump
	cmdPause
	cmdResume
)

// Run is one simulation instance. Commands may be queued from any goroutine;
// Tick must be called from a single goroutine.
type Run struct {
	cfg config.SpaceDropConfig

	qmu   sync.Mutex
	queue []command

	mu       sync.Mutex // Guards everything below
	phase    Phase
	tick     int
	craft    Craft
	field    *Field
	score    *ScoreKeeper
	stats    RunStats
	gameOver *GameOverEvent

	events dispatcher
}

// NewRun creates a run in the Ready phase. The seed drives obstacle placement.
func NewRun(cfg config.SpaceDropConfig, seed int64) *Run {
	r := &Run{
		cfg:   cfg,
		field: NewField(cfg.World, cfg.Obstacles, seed),
		score: NewScoreKeeper(cfg.Scoring, cfg.Difficulty),
	}
	r.resetLocked()
	r.phase = PhaseReady
	return r
}

// Config returns the configuration the run was built with.
func (r *Run) Config() config.SpaceDropConfig {
	return r.cfg
}

// Start queues a new run. It applies from Ready or GameOver only.
func (r *Run) Start() { r.enqueue(cmdStart) }

// Jump queues a jump. It applies while Running only.
func (r *Run) Jump() { r.enqueue(cmdJump) }

// Pause queues a pause (true) or resume (false).
func (r *Run) Pause(paused bool) {
	if paused {
		r.enqueue(cmdPause)
		return
	}
	r.enqueue(cmdResume)
}

func (r *Run) enqueue(c command) {
	r.qmu.Lock()
	r.queue = append(r.queue, c)
	r.qmu.Unlock()
}

func (r *Run) drain() []command {
	r.qmu.Lock()
	defer r.qmu.Unlock()
	cmds := r.queue
	r.queue = nil
	return cmds
}

// Reset discards pending commands and returns the run to Ready.
func (r *Run) Reset() {
	r.drain()
	r.mu.Lock()
	r.resetLocked()
	r.phase = PhaseReady
	r.mu.Unlock()
}

// Subscribe registers a listener for events and returns an unsubscribe function.
func (r *Run) Subscribe(l Listener) func() {
	return r.events.add(l)
}

// Phase returns the current phase.
func (r *Run) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Run) resetLocked() {
	r.tick = 0
	r.craft = NewCraft(r.cfg)
	r.field.Reset()
	r.score.Reset()
	r.stats = RunStats{}
	r.gameOver = nil
}

// apply executes one queued command, gated by the phase at this moment.
// Commands that are invalid for the phase are dropped.
func (r *Run) apply(c command) {
	switch c {
	case cmdStart:
		if r.phase == PhaseReady || r.phase == PhaseGameOver {
			r.resetLocked()
			r.phase = PhaseRunning
		}
	case cmdJump:
		if r.phase == PhaseRunning {
			r.craft.Jump(r.cfg.Physics)
		}
	case cmdPause:
		if r.phase == PhaseRunning {
			r.phase = PhasePaused
		}
	case cmdResume:
		if r.phase == PhasePaused {
			r.phase = PhaseRunning
		}
	}
}

// Tick applies queued commands and advances the simulation by one step when
// Running. The returned events are also delivered to subscribers once the
// tick is complete.
func (r *Run) Tick() []Event {
	cmds := r.drain()

	r.mu.Lock()
	for _, c := range cmds {
		r.apply(c)
	}
	events := r.stepLocked()
	r.mu.Unlock()

	r.events.dispatch(events)
	return events
}

func (r *Run) stepLocked() []Event {
	if r.phase != PhaseRunning {
		return nil
	}
	r.tick++
	r.stats.Ticks++

	curve := CurveAt(r.cfg.Difficulty, r.score.State().Score)
	speed := curve.ScrollSpeed(r.cfg.Obstacles)

	r.craft.Integrate(r.cfg.Physics)
	r.field.Advance(speed)
	r.stats.Distance += speed * distancePerSpeed
	r.field.SpawnIfNeeded(func() float64 {
		if r.score.TakeBreather() {
			return BreatherGap(r.cfg.Obstacles, r.cfg.Difficulty)
		}
		return curve.Gap(r.cfg.Obstacles)
	})

	res := Check(r.cfg, r.craft, r.field)
	if res.Hit {
		r.phase = PhaseGameOver
		st := r.score.State()
		ev := GameOverEvent{
			Tick:   r.tick,
			Cause:  res.Cause,
			PairID: res.PairID,
			Score:  st.Score,
			Tier:   st.Tier,
			Stats:  r.stats,
		}
		r.gameOver = &ev
		return []Event{ev}
	}

	var events []Event
	for _, o := range res.Passed {
		for _, ev := range r.score.OnPass(r.tick, r.craft.Pos.Y, o) {
			if _, ok := ev.(NearMissEvent); ok {
				r.stats.NearMisses++
			}
			events = append(events, ev)
		}
		r.stats.Passes++
	}
	return events
}
