package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a CLI string into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// Title returns the display name of the preset.
func (p DifficultyPreset) Title() string {
	switch p {
	case DifficultyEasy:
		return "Easy"
	case DifficultyHard:
		return "Hard"
	case DifficultyFixed:
		return "Fixed"
	default:
		return "Normal"
	}
}

// Description is a one-line summary for menus and the presets command.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Gentle speed-up, frequent breathers"
	case DifficultyHard:
		return "Fast ramp, rare breathers"
	case DifficultyFixed:
		return "No speed-up or gap tightening"
	default:
		return "The intended balance"
	}
}

// ApplyPreset modifies the difficulty curve of cfg for a preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *SpaceDropConfig, preset DifficultyPreset) {
	d := &cfg.Difficulty
	switch preset {
	case DifficultyEasy:
		d.VelocityGainPerPoint *= 0.5
		d.GapTighteningPerPoint *= 0.5
		d.MaxGapTightening *= 0.5
		if d.BreatherInterval > 2 {
			d.BreatherInterval -= 2
		}
	case DifficultyHard:
		d.VelocityGainPerPoint *= 1.5
		d.GapTighteningPerPoint *= 1.5
		if d.BreatherInterval > 0 {
			d.BreatherInterval += 3
		}
	case DifficultyFixed:
		d.VelocityGainPerPoint = 0
		d.GapTighteningPerPoint = 0
		d.MaxGapTightening = 0
	}
}
