package spacedrop

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/space-drop/internal/config"
)

func startedRun(t *testing.T, mutate func(*config.SpaceDropConfig)) *Run {
	t.Helper()
	cfg := config.DefaultSpaceDropConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	r := NewRun(cfg, 12345)
	r.Start()
	r.Tick()
	if r.Phase() != PhaseRunning {
		t.Fatalf("phase after Start = %v, expected Running", r.Phase())
	}
	return r
}

func TestRunSpawnAndFirstTick(t *testing.T) {
	cfg := config.DefaultSpaceDropConfig()
	r := NewRun(cfg, 1)

	s := r.Snapshot()
	if s.Phase != PhaseReady {
		t.Fatalf("new run phase = %v, expected Ready", s.Phase)
	}
	if len(s.Obstacles) != 0 {
		t.Errorf("new run should have no obstacles, got %d", len(s.Obstacles))
	}
	if s.Craft.Pos.X != cfg.World.Width/2 || s.Craft.Pos.Y != cfg.World.Height/2 {
		t.Errorf("craft spawn = %+v", s.Craft.Pos)
	}
	if s.Craft.Vel.Y != -cfg.Physics.JumpPower {
		t.Errorf("spawn velocity.y = %v", s.Craft.Vel.Y)
	}

	r.Start()
	r.Tick()
	s = r.Snapshot()

	wantVel := -cfg.Physics.JumpPower + cfg.Physics.Gravity
	if math.Abs(s.Craft.Vel.Y-wantVel) > eps {
		t.Errorf("velocity.y after one tick = %v, expected %v", s.Craft.Vel.Y, wantVel)
	}
	wantY := cfg.World.Height/2 + wantVel
	if math.Abs(s.Craft.Pos.Y-wantY) > eps {
		t.Errorf("position.y after one tick = %v, expected %v", s.Craft.Pos.Y, wantY)
	}
	if s.Craft.Pos.Y >= cfg.World.Height/2 {
		t.Error("craft should rise on the first tick")
	}
}

func TestRunReadyIgnoresTicks(t *testing.T) {
	r := NewRun(config.DefaultSpaceDropConfig(), 1)
	before := r.Snapshot()
	for i := 0; i < 10; i++ {
		r.Jump()
		r.Tick()
	}
	after := r.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Ready run changed without Start:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRunBreatherGapOnNextSpawn(t *testing.T) {
	r := startedRun(t, func(c *config.SpaceDropConfig) { c.Scoring.NearMissEnabled = false })
	cfg := r.Config()

	for i := 0; i < 7; i++ {
		r.score.OnPass(r.tick, 300, bottomAt(100+i))
	}
	if r.score.State().Score != 7 {
		t.Fatalf("score = %d, expected 7", r.score.State().Score)
	}

	// Empty the field so the next tick spawns fresh pairs.
	r.field.Reset()
	r.Tick()

	gaps := map[int]float64{}
	for _, o := range r.Snapshot().Obstacles {
		gaps[o.PairID] = o.GapHeight
	}
	if len(gaps) < 2 {
		t.Fatalf("expected several pairs, got %v", gaps)
	}

	breather := cfg.Obstacles.BaseGap + cfg.Difficulty.BreatherBonus
	if gaps[0] != breather {
		t.Errorf("first pair after seventh pass gap = %v, expected %v", gaps[0], breather)
	}
	tightened := cfg.Obstacles.BaseGap - CurveAt(cfg.Difficulty, 7).GapDelta
	if gaps[1] != tightened {
		t.Errorf("following pair gap = %v, expected tightened %v", gaps[1], tightened)
	}
}

func TestRunPauseIgnoresJump(t *testing.T) {
	r := startedRun(t, nil)
	cfg := r.Config()
	before := r.Snapshot().Craft.Vel.Y

	// All three commands land in the same tick and apply in order.
	r.Pause(true)
	r.Jump()
	r.Pause(false)
	r.Tick()

	got := r.Snapshot().Craft.Vel.Y
	want := math.Min(before+cfg.Physics.Gravity, cfg.Physics.MaxVelocityY)
	if math.Abs(got-want) > eps {
		t.Errorf("velocity.y = %v, expected %v (jump while paused must be ignored)", got, want)
	}
}

func TestRunPauseFreezes(t *testing.T) {
	r := startedRun(t, nil)

	r.Pause(true)
	r.Tick()
	frozen := r.Snapshot()
	if frozen.Phase != PhasePaused {
		t.Fatalf("phase = %v, expected Paused", frozen.Phase)
	}

	r.Jump()
	for i := 0; i < 20; i++ {
		r.Tick()
	}
	if s := r.Snapshot(); !reflect.DeepEqual(frozen, s) {
		t.Error("paused run should not change")
	}

	r.Pause(false)
	r.Tick()
	if s := r.Snapshot(); s.Phase != PhaseRunning || s.Tick != frozen.Tick+1 {
		t.Errorf("after resume phase=%v tick=%d, expected Running at %d", s.Phase, s.Tick, frozen.Tick+1)
	}
}

func TestRunGameOverOnce(t *testing.T) {
	r := startedRun(t, nil)
	r.mu.Lock()
	r.score.Award(r.tick, 5)
	r.craft.Pos.Y = r.cfg.World.Height + r.cfg.Collision.BoundaryMargin + 50
	r.mu.Unlock()

	events := r.Tick()
	if len(events) != 1 {
		t.Fatalf("expected a single game over event, got %+v", events)
	}
	over, ok := events[0].(GameOverEvent)
	if !ok {
		t.Fatalf("event = %T, expected GameOverEvent", events[0])
	}
	if over.Cause != HitBoundary || over.Score != 5 {
		t.Errorf("game over = %+v", over)
	}
	if r.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected GameOver", r.Phase())
	}

	snap := r.Snapshot()
	r.Jump()
	r.Pause(true)
	for i := 0; i < 5; i++ {
		if ev := r.Tick(); len(ev) != 0 {
			t.Fatalf("GameOver should be terminal, got %+v", ev)
		}
	}
	if !reflect.DeepEqual(snap, r.Snapshot()) {
		t.Error("GameOver run changed")
	}

	r.Start()
	r.Tick()
	s := r.Snapshot()
	if s.Phase != PhaseRunning || s.Score != 0 || s.GameOver != nil || s.Stats.Ticks != 1 {
		t.Errorf("restart should reset the run, got %+v", s)
	}
}

func TestRunStartIgnoredWhileRunning(t *testing.T) {
	r := startedRun(t, nil)
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	r.Start()
	r.Tick()
	if s := r.Snapshot(); s.Tick != 12 {
		t.Errorf("Start while Running should be ignored, tick = %d", s.Tick)
	}
}

func TestRunReset(t *testing.T) {
	r := startedRun(t, nil)
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	r.Jump()
	r.Reset()

	s := r.Snapshot()
	if s.Phase != PhaseReady || s.Tick != 0 || len(s.Obstacles) != 0 {
		t.Errorf("after Reset: %+v", s)
	}
	r.Tick()
	if r.Phase() != PhaseReady {
		t.Error("commands queued before Reset should be discarded")
	}
}

func TestRunScoreMonotonicAndDeterministic(t *testing.T) {
	play := func() ([]int, Snapshot) {
		r := NewRun(config.DefaultSpaceDropConfig(), 2024)
		pilot := Autopilot{Slack: 10}
		r.Start()
		var scores []int
		for i := 0; i < 5000 && r.Phase() != PhaseGameOver; i++ {
			s := r.Snapshot()
			if pilot.ShouldJump(s, r.Config().World.Height) {
				r.Jump()
			}
			r.Tick()
			scores = append(scores, r.Snapshot().Score)
		}
		return scores, r.Snapshot()
	}

	a, snapA := play()
	for i := 1; i < len(a); i++ {
		if a[i] < a[i-1] {
			t.Fatalf("score decreased at tick %d: %d -> %d", i, a[i-1], a[i])
		}
	}

	b, snapB := play()
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(snapA, snapB) {
		t.Error("same seed and inputs should produce the same run")
	}
}

func TestRunStats(t *testing.T) {
	r := startedRun(t, func(c *config.SpaceDropConfig) { c.Difficulty = config.DifficultyConfig{MaxSpeedMultiplier: 1} })
	for i := 0; i < 9; i++ {
		r.Tick()
	}

	s := r.Snapshot().Stats
	if s.Ticks != 10 {
		t.Errorf("ticks = %d, expected 10", s.Ticks)
	}
	want := 10 * r.Config().Obstacles.ScrollSpeed * distancePerSpeed
	if math.Abs(s.Distance-want) > 1e-6 {
		t.Errorf("distance = %v, expected %v", s.Distance, want)
	}
}

func TestRunListeners(t *testing.T) {
	r := startedRun(t, nil)

	var got []Event
	var seenPhase Phase
	unsubscribe := r.Subscribe(func(ev Event) {
		got = append(got, ev)
		// Listeners run after the tick and may read the run.
		seenPhase = r.Snapshot().Phase
	})

	r.mu.Lock()
	r.craft.Pos.Y = -1000
	r.mu.Unlock()
	returned := r.Tick()

	if !reflect.DeepEqual(got, returned) {
		t.Errorf("listener saw %+v, Tick returned %+v", got, returned)
	}
	if seenPhase != PhaseGameOver {
		t.Errorf("listener saw phase %v, expected GameOver", seenPhase)
	}

	unsubscribe()
	r.Start()
	r.Tick()
	r.mu.Lock()
	r.craft.Pos.Y = -1000
	r.mu.Unlock()
	r.Tick()
	if len(got) != 1 {
		t.Errorf("unsubscribed listener still called: %+v", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	r := startedRun(t, nil)
	s := r.Snapshot()
	if len(s.Obstacles) == 0 {
		t.Fatal("expected obstacles after the first tick")
	}
	s.Obstacles[0].Pos.X = -5000

	if r.Snapshot().Obstacles[0].Pos.X == -5000 {
		t.Error("mutating a snapshot changed the run")
	}
}

func TestSimulate(t *testing.T) {
	cfg := config.DefaultSpaceDropConfig()

	var over []GameOverEvent
	res := Simulate(cfg, 99, 20000, Autopilot{Slack: 10}, func(ev Event) {
		if e, ok := ev.(GameOverEvent); ok {
			over = append(over, e)
		}
	})

	if res.Survived {
		if len(over) != 0 || res.Cause != HitNone {
			t.Errorf("surviving run reported a crash: %+v, %v", res, over)
		}
	} else {
		if len(over) != 1 {
			t.Fatalf("game over events = %d, expected 1", len(over))
		}
		if over[0].Score != res.Score || over[0].Cause != res.Cause || over[0].Stats != res.Stats {
			t.Errorf("result %+v does not match game over %+v", res, over[0])
		}
	}
	if again := Simulate(cfg, 99, 20000, Autopilot{Slack: 10}); again != res {
		t.Errorf("same seed gave %+v, expected %+v", again, res)
	}

	short := Simulate(cfg, 99, 3, Autopilot{Slack: 10})
	if !short.Survived || short.Stats.Ticks != 3 || short.Cause != HitNone {
		t.Errorf("3-tick run = %+v, expected survival after 3 ticks", short)
	}
}
