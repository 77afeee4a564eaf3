package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r RunRecord) string {
	t.Helper()
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id := mustSave(t, store, RunRecord{Mode: "normal", Score: 12})
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id %q is not a UUID: %v", id, err)
	}

	fixed := uuid.NewString()
	if got := mustSave(t, store, RunRecord{ID: fixed, Mode: "normal"}); got != fixed {
		t.Errorf("SaveRun() id = %q, expected caller's %q", got, fixed)
	}

	if _, err := store.SaveRun(RunRecord{ID: fixed, Mode: "normal"}); err == nil {
		t.Error("duplicate ID should be rejected")
	}
	if _, err := store.SaveRun(RunRecord{Score: 1}); err == nil {
		t.Error("run without mode should be rejected")
	}
}

func TestStoreRunRoundTrip(t *testing.T) {
	store := openTestStore(t)
	created := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	id := mustSave(t, store, RunRecord{
		Mode:       "hard",
		Score:      31,
		Tier:       "Pilot",
		Duration:   95*time.Second + 250*time.Millisecond,
		Distance:   412.5,
		Passes:     27,
		NearMisses: 4,
		CreatedAt:  created,
	})

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.Mode != "hard" || got.Score != 31 || got.Tier != "Pilot" || got.Passes != 27 || got.NearMisses != 4 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.Duration != 95250*time.Millisecond {
		t.Errorf("duration = %v, expected 1m35.25s", got.Duration)
	}
	if got.Distance != 412.5 {
		t.Errorf("distance = %v, expected 412.5", got.Distance)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, expected %v", got.CreatedAt, created)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []RunRecord{
		{Mode: "normal", Score: 100},
		{Mode: "normal", Score: 50},
		{Mode: "normal", Score: 200, Duration: time.Second},
		{Mode: "normal", Score: 200, Duration: time.Minute},
		{Mode: "easy", Score: 500},
	} {
		mustSave(t, store, r)
	}

	runs, err := store.TopRuns("normal", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}

	expected := []int{200, 200, 100, 50}
	for i, r := range runs {
		if r.Score != expected[i] {
			t.Errorf("runs[%d].Score = %d, expected %d", i, r.Score, expected[i])
		}
		if r.Mode != "normal" {
			t.Errorf("runs[%d].Mode = %q, expected normal", i, r.Mode)
		}
	}
	if runs[0].Duration != time.Minute {
		t.Errorf("tie should favour the longer run, got %v", runs[0].Duration)
	}

	limited, err := store.TopRuns("normal", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d runs", len(limited))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("expected high score 0 for empty mode, got %d", score)
	}

	mustSave(t, store, RunRecord{Mode: "normal", Score: 7})
	mustSave(t, store, RunRecord{Mode: "normal", Score: 19})
	mustSave(t, store, RunRecord{Mode: "hard", Score: 40})

	score, err = store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 19 {
		t.Errorf("expected high score 19, got %d", score)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("normal")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesPlayed != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, RunRecord{Mode: "normal", Score: 10, Duration: 30 * time.Second, Distance: 100, NearMisses: 2})
	mustSave(t, store, RunRecord{Mode: "normal", Score: 20, Duration: 20 * time.Second, Distance: 250, NearMisses: 1})
	mustSave(t, store, RunRecord{Mode: "hard", Score: 99})

	st, err := store.Stats("normal")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.GamesPlayed != 2 || st.BestScore != 20 || st.AvgScore != 15 {
		t.Errorf("stats = %+v", st)
	}
	if st.BestTime != 30*time.Second {
		t.Errorf("best time = %v, expected 30s", st.BestTime)
	}
	if st.BestDistance != 250 {
		t.Errorf("best distance = %v, expected 250", st.BestDistance)
	}
	if st.TotalNearMisses != 3 {
		t.Errorf("near misses = %d, expected 3", st.TotalNearMisses)
	}
	if st.LastPlayed.IsZero() {
		t.Error("last played should be set")
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["hard"].BestScore != 99 || all["normal"].GamesPlayed != 2 {
		t.Errorf("AllStats() = %+v", all)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, RunRecord{Mode: "normal", Score: 100})
	mustSave(t, store, RunRecord{Mode: "easy", Score: 200})

	if err := store.ClearRuns("normal"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("normal", 10)
	if len(runs) != 0 {
		t.Errorf("expected 0 runs after clear, got %d", len(runs))
	}

	runs, _ = store.TopRuns("easy", 10)
	if len(runs) != 1 {
		t.Errorf("easy runs should be unaffected, got %d", len(runs))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.spacedrop/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".spacedrop", "test.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
