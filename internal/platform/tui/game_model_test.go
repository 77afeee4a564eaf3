package tui

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/core"
	"github.com/vovakirdan/space-drop/internal/games/spacedrop"
	"github.com/vovakirdan/space-drop/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

// send feeds msgs to a game model and returns the final model.
func send(t *testing.T, m GameModel, msgs ...tea.Msg) GameModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		gm, ok := next.(GameModel)
		if !ok {
			t.Fatalf("Update returned %T, expected GameModel", next)
		}
		m = gm
	}
	return m
}

type recordingFeed struct {
	mu     sync.Mutex
	runIDs []string
	events []spacedrop.Event
}

func (f *recordingFeed) Listener(runID string) spacedrop.Listener {
	f.mu.Lock()
	f.runIDs = append(f.runIDs, runID)
	f.mu.Unlock()
	return func(ev spacedrop.Event) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, ev)
	}
}

func TestGameModelLaunchesOnJump(t *testing.T) {
	m := NewGameModel(config.DefaultSpaceDropConfig(), config.DifficultyNormal, GameOptions{Runtime: testRuntime()})

	if m.State().Phase != spacedrop.PhaseReady.String() {
		t.Fatalf("initial phase = %q, expected Ready", m.State().Phase)
	}

	m = send(t, m, TickMsg{})
	if m.State().Phase != spacedrop.PhaseReady.String() {
		t.Errorf("ticks without input should stay Ready, got %q", m.State().Phase)
	}

	m = send(t, m, keyMsg(" "), TickMsg{})
	if m.State().Phase != spacedrop.PhaseRunning.String() {
		t.Errorf("phase after jump = %q, expected Running", m.State().Phase)
	}
}

func TestGameModelPauseToggle(t *testing.T) {
	m := NewGameModel(config.DefaultSpaceDropConfig(), config.DifficultyNormal, GameOptions{Runtime: testRuntime()})
	m = send(t, m, keyMsg("enter"), TickMsg{})

	m = send(t, m, keyMsg("p"), TickMsg{})
	if !m.State().Paused {
		t.Fatalf("expected paused, got %+v", m.State())
	}

	m = send(t, m, keyMsg("p"), TickMsg{})
	if m.State().Paused {
		t.Errorf("second pause should resume, got %+v", m.State())
	}
}

func TestGameModelBackOnlyWhenNotRunning(t *testing.T) {
	newModel := func() GameModel {
		return NewGameModel(config.DefaultSpaceDropConfig(), config.DifficultyNormal, GameOptions{Runtime: testRuntime()})
	}

	running := send(t, newModel(), keyMsg("enter"), TickMsg{}, keyMsg("b"))
	if running.BackToMenu() {
		t.Error("back should be ignored while the craft is flying")
	}

	ready := send(t, newModel(), keyMsg("b"))
	if !ready.BackToMenu() {
		t.Error("back should return to the menu from Ready")
	}
	if ready.IsQuitting() {
		t.Error("back inside a session should not quit")
	}

	// No further ticks are scheduled once leaving
	_, cmd := ready.Update(TickMsg{})
	if cmd != nil {
		t.Error("tick after back should not schedule another tick")
	}
}

func TestGameModelStandaloneBackQuits(t *testing.T) {
	m := NewGameModel(config.DefaultSpaceDropConfig(), config.DifficultyNormal, GameOptions{Runtime: testRuntime()})
	m.standalone = true

	next, cmd := m.Update(keyMsg("b"))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("standalone back should quit the program")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(config.DefaultSpaceDropConfig(), config.DifficultyNormal, GameOptions{Runtime: testRuntime()})

	next, cmd := m.Update(keyMsg("q"))
	gm := next.(GameModel)
	if !gm.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
	if gm.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestGameModelRecordsAndStreams(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRun(storage.RunRecord{Mode: "normal", Score: 42}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	feed := &recordingFeed{}
	m := NewGameModel(config.DefaultSpaceDropConfig(), config.DifficultyNormal, GameOptions{
		Store:   store,
		Feed:    feed,
		FeedID:  "stream-1",
		Runtime: testRuntime(),
	})

	if !strings.Contains(m.View(), "Best: 42") {
		t.Error("HUD should show the stored best score")
	}

	// Without input the craft falls out of the world
	m = send(t, m, keyMsg("enter"))
	for i := 0; i < 2000 && !m.State().GameOver; i++ {
		m = send(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("craft should eventually crash without input")
	}

	feed.mu.Lock()
	if len(feed.runIDs) != 1 || feed.runIDs[0] != "stream-1" {
		t.Errorf("feed run ids = %v, expected [stream-1]", feed.runIDs)
	}
	last := feed.events[len(feed.events)-1]
	feed.mu.Unlock()
	if _, ok := last.(spacedrop.GameOverEvent); !ok {
		t.Errorf("last streamed event = %T, expected GameOverEvent", last)
	}

	st, err := store.Stats("normal")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.GamesPlayed != 2 {
		t.Errorf("games played = %d, expected the crashed run to be recorded", st.GamesPlayed)
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	m := NewGameModel(config.DefaultSpaceDropConfig(), config.DifficultyNormal, GameOptions{Runtime: testRuntime()})
	m = send(t, m, keyMsg("enter"), TickMsg{}, TickMsg{})
	before := m.game.Run().Snapshot().Tick

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := m.game.Run().Snapshot().Tick; got != before {
		t.Errorf("resize should not restart the run: tick %d -> %d", before, got)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", m.screen.Width(), m.screen.Height())
	}
}
