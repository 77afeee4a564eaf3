package storage

import (
	"time"

	"github.com/vovakirdan/space-drop/internal/games/spacedrop"
)

// RecordFromGameOver converts the final event of a run into a record.
// tickRate converts simulation ticks to wall time.
func RecordFromGameOver(mode string, ev spacedrop.GameOverEvent, tickRate int) RunRecord {
	if tickRate <= 0 {
		tickRate = 60
	}
	return RunRecord{
		Mode:       mode,
		Score:      ev.Score,
		Tier:       ev.Tier,
		Duration:   time.Duration(ev.Stats.Ticks) * time.Second / time.Duration(tickRate),
		Distance:   ev.Stats.Distance,
		Passes:     ev.Stats.Passes,
		NearMisses: ev.Stats.NearMisses,
	}
}

// Recorder returns a run listener that saves every finished run.
// done, if not nil, is called with the result of each save.
// This adapter lets a run persist its results without depending on storage.
func (s *Store) Recorder(mode string, tickRate int, done func(id string, err error)) spacedrop.Listener {
	return func(ev spacedrop.Event) {
		over, ok := ev.(spacedrop.GameOverEvent)
		if !ok {
			return
		}
		id, err := s.SaveRun(RecordFromGameOver(mode, over, tickRate))
		if done != nil {
			done(id, err)
		}
	}
}
