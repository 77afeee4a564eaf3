package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-drop/internal/config"
)

func updateSession(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, expected SessionModel", next)
		}
		m = sm
	}
	return m
}

func newTestSession(feed FeedPublisher) SessionModel {
	return NewSessionModel(SessionOptions{
		Config:   config.DefaultSpaceDropConfig(),
		Runtime:  testRuntime(),
		Feed:     feed,
		Username: "tester",
	})
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	feed := &recordingFeed{}
	m := newTestSession(feed)

	m = updateSession(t, m, keyMsg("enter"))
	if m.screen != screenGame || m.game == nil {
		t.Fatal("selecting a preset should start a game")
	}
	if m.game.game.Mode() != config.DifficultyNormal {
		t.Errorf("game mode = %q, expected normal", m.game.game.Mode())
	}
	if len(feed.runIDs) != 1 || feed.runIDs[0] == "" {
		t.Errorf("game should stream under a fresh id, got %v", feed.runIDs)
	}

	m = updateSession(t, m, keyMsg("b"))
	if m.screen != screenMenu || m.game != nil {
		t.Error("back from a Ready game should return to the menu")
	}
	if m.lastMode != "normal" {
		t.Errorf("last mode = %q, expected normal", m.lastMode)
	}
}

func TestSessionEachGameGetsNewFeedID(t *testing.T) {
	feed := &recordingFeed{}
	m := newTestSession(feed)

	m = updateSession(t, m, keyMsg("enter"), keyMsg("b"), keyMsg("enter"))
	if len(feed.runIDs) != 2 || feed.runIDs[0] == feed.runIDs[1] {
		t.Errorf("feed ids = %v, expected two distinct ids", feed.runIDs)
	}
}

func TestSessionScoreboardOpensOnLastMode(t *testing.T) {
	m := newTestSession(nil)

	m = updateSession(t, m, keyMsg("down"), keyMsg("enter"), keyMsg("b"))
	m = updateSession(t, m, keyMsg("tab"))
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if m.scoreboard.Mode() != "hard" {
		t.Errorf("scoreboard mode = %q, expected hard", m.scoreboard.Mode())
	}

	m = updateSession(t, m, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Error("esc should return to the menu")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := newTestSession(nil)
	m = updateSession(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, keyMsg("enter"))

	if m.game.screen.Width() != 100 || m.game.screen.Height() != 30 {
		t.Errorf("game screen = %dx%d, expected 100x30", m.game.screen.Width(), m.game.screen.Height())
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(nil)
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil || next.View() != "" {
		t.Error("q on the menu should quit the session")
	}
}
