package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/core"
	"github.com/vovakirdan/space-drop/internal/games/spacedrop"
	"github.com/vovakirdan/space-drop/internal/storage"
)

// FeedPublisher streams run events to remote subscribers.
type FeedPublisher interface {
	Listener(runID string) spacedrop.Listener
}

// GameOptions holds everything a game screen needs besides the game itself.
type GameOptions struct {
	Store   *storage.Store // Optional; runs are not recorded when nil
	Feed    FeedPublisher  // Optional
	FeedID  string         // Stream ID used for feed envelopes
	Logger  *log.Logger
	Runtime core.RuntimeConfig
}

// GameModel runs one Space Drop game inside Bubble Tea.
type GameModel struct {
	game       *spacedrop.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	standalone bool // Back quits the program instead of returning to a menu
}

// NewGameModel creates a game model for a configuration and preset.
// The preset is applied to a copy of cfg.
func NewGameModel(cfg config.SpaceDropConfig, preset config.DifficultyPreset, opts GameOptions) GameModel {
	rc := opts.Runtime
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	config.ApplyPreset(&cfg, preset)
	game := spacedrop.New(cfg, preset)
	mode := string(preset)

	if opts.Store != nil {
		if best, err := opts.Store.HighScore(mode); err == nil {
			game.SetBest(best)
		} else {
			logger.Warn("cannot load high score", "mode", mode, "error", err)
		}
		game.Subscribe(opts.Store.Recorder(mode, rc.TickRate, func(id string, err error) {
			if err != nil {
				logger.Error("cannot save run", "mode", mode, "error", err)
				return
			}
			logger.Debug("run saved", "id", id, "mode", mode)
		}))
	}
	if opts.Feed != nil {
		game.Subscribe(opts.Feed.Listener(opts.FeedID))
	}
	game.Subscribe(logEvents(logger, mode))

	game.Reset(rc)

	return GameModel{
		game:       game,
		screen:     core.NewScreen(rc.ScreenW, rc.ScreenH),
		config:     rc,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keyMapper:  NewKeyMapper(),
	}
}

// logEvents logs the milestones of a run.
func logEvents(logger *log.Logger, mode string) spacedrop.Listener {
	return func(ev spacedrop.Event) {
		switch e := ev.(type) {
		case spacedrop.AchievementEvent:
			logger.Info("achievement unlocked", "mode", mode, "tier", e.Name, "score", e.Score)
		case spacedrop.NearMissEvent:
			logger.Debug("near miss", "mode", mode, "distance", e.Distance)
		case spacedrop.GameOverEvent:
			logger.Info("game over", "mode", mode, "score", e.Score, "cause", e.Cause,
				"ticks", e.Stats.Ticks, "passes", e.Stats.Passes)
		}
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// The world is logical; a resize only changes the scale.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when the run is not in motion
	if action, _ := m.keyMapper.MapKey(msg); action == core.ActionBack && !m.running() {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}

	return m, nil
}

func (m GameModel) running() bool {
	return m.gameState.Phase == spacedrop.PhaseRunning.String()
}

// handleTick advances the simulation by one step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to ~/.spacedrop/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".spacedrop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.game.Mode(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame plays a single preset in the terminal until the user quits.
func RunGame(cfg config.SpaceDropConfig, preset config.DifficultyPreset, opts GameOptions) error {
	model := NewGameModel(cfg, preset, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
