package spacedrop

import (
	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/core"
)

// bannerTicks is how long a near-miss or achievement banner stays on screen.
const bannerTicks = 45

// Game adapts a Run to the platform's Reset/Step/Render/State loop and keeps
// the presentation state (banners, best score) the renderer needs.
type Game struct {
	cfg       config.SpaceDropConfig
	preset    config.DifficultyPreset
	run       *Run
	runtime   core.RuntimeConfig
	listeners []Listener

	best       int
	banner     string
	bannerLeft int
}

// New creates a game for the given configuration and preset.
// The preset is only a label here; it is expected to be applied to cfg already.
func New(cfg config.SpaceDropConfig, preset config.DifficultyPreset) *Game {
	return &Game{cfg: cfg, preset: preset}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "spacedrop"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Space Drop"
}

// Mode returns the difficulty preset the game was created with.
func (g *Game) Mode() config.DifficultyPreset {
	return g.preset
}

// Run returns the current simulation instance. It changes on every Reset.
func (g *Game) Run() *Run {
	return g.run
}

// Subscribe registers a listener that survives Reset.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
	if g.run != nil {
		g.run.Subscribe(l)
	}
}

// SetBest sets the best score shown in the HUD.
func (g *Game) SetBest(best int) {
	g.best = best
}

// Reset builds a fresh run seeded from cfg. The run starts in Ready.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.run = NewRun(g.cfg, cfg.Seed)
	for _, l := range g.listeners {
		g.run.Subscribe(l)
	}
	g.banner = ""
	g.bannerLeft = 0
}

// Step translates the frame's actions into run commands, in arrival order,
// and advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	phase := g.run.Phase()
	for _, a := range in.Actions() {
		switch a {
		case core.ActionJump:
			// Launching from Ready with the jump key is the expected feel.
			if phase == PhaseReady {
				g.run.Start()
				phase = PhaseRunning
			}
			g.run.Jump()
		case core.ActionPause:
			switch phase {
			case PhaseRunning:
				g.run.Pause(true)
				phase = PhasePaused
			case PhasePaused:
				g.run.Pause(false)
				phase = PhaseRunning
			}
		case core.ActionStart, core.ActionConfirm:
			if phase == PhaseReady || phase == PhaseGameOver {
				g.run.Start()
				phase = PhaseRunning
			}
		}
	}

	events := g.run.Tick()
	g.observe(events)

	out := make([]core.Event, len(events))
	for i, ev := range events {
		out[i] = ev
	}
	return core.StepResult{State: g.State(), Events: out}
}

// observe updates presentation state from tick events.
func (g *Game) observe(events []Event) {
	if g.bannerLeft > 0 {
		g.bannerLeft--
	}
	for _, ev := range events {
		switch e := ev.(type) {
		case NearMissEvent:
			g.setBanner("NEAR MISS +1")
		case AchievementEvent:
			g.setBanner("ACHIEVEMENT: " + e.Name)
		case GameOverEvent:
			if e.Score > g.best {
				g.best = e.Score
			}
		}
	}
}

// setBanner shows text for bannerTicks. Within one tick achievements follow
// near misses, so the achievement wins.
func (g *Game) setBanner(text string) {
	g.banner = text
	g.bannerLeft = bannerTicks
}

// State returns the coarse state for the platform.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{Phase: PhaseReady.String()}
	}
	s := g.run.Snapshot()
	return core.GameState{
		Score:    s.Score,
		Phase:    s.Phase.String(),
		GameOver: s.Phase == PhaseGameOver,
		Paused:   s.Phase == PhasePaused,
	}
}
