package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/storage"
)

func openTUIStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func updateMenu(m MenuModel, msgs ...tea.Msg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuListsPresetsThenScoreboard(t *testing.T) {
	m := NewMenuModel(nil, 100, 30)

	if len(m.items) != len(config.Presets)+1 {
		t.Fatalf("items = %d, expected %d", len(m.items), len(config.Presets)+1)
	}
	if !m.items[len(m.items)-1].Scoreboard {
		t.Error("last item should open the scoreboard")
	}
	if m.items[m.cursor].Preset != config.DifficultyNormal {
		t.Errorf("cursor starts on %q, expected normal", m.items[m.cursor].Preset)
	}

	view := m.View()
	for _, p := range config.Presets {
		if !strings.Contains(view, p.Title()) {
			t.Errorf("menu view missing preset %q", p.Title())
		}
	}
}

func TestMenuSelectPreset(t *testing.T) {
	m := NewMenuModel(nil, 100, 30)
	m = updateMenu(m, keyMsg("up"), keyMsg("up"), keyMsg("up"), keyMsg("enter"))

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Preset != config.Presets[0] {
		t.Errorf("selected %q, expected first preset %q", sel.Preset, config.Presets[0])
	}
}

func TestMenuCursorClamped(t *testing.T) {
	m := NewMenuModel(nil, 100, 30)
	for i := 0; i < 20; i++ {
		m = updateMenu(m, keyMsg("down"))
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}

	m = updateMenu(m, keyMsg("enter"))
	if !m.WantsScoreboard() || m.Selected() != nil {
		t.Error("selecting the last item should open the scoreboard")
	}
}

func TestMenuShortcuts(t *testing.T) {
	if m := updateMenu(NewMenuModel(nil, 100, 30), keyMsg("tab")); !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m := NewMenuModel(nil, 100, 30)
	next, cmd := m.Update(keyMsg("q"))
	if !next.(MenuModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	store := openTUIStore(t)
	if _, err := store.SaveRun(storage.RunRecord{Mode: "hard", Score: 17}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	view := NewMenuModel(store, 100, 30).View()
	if !strings.Contains(view, "(best 17)") {
		t.Errorf("menu should show the hard best score, got:\n%s", view)
	}
}
