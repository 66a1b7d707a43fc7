package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in increasing difficulty.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
}

// StartLevelForPreset returns the start level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 1
	}
}

// ApplyBlocksPreset modifies the config based on a difficulty preset.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	cfg.Progression.StartLevel = StartLevelForPreset(preset)

	// Adjust forgiveness based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timing.LockDelayMs = 800
		cfg.Timing.MaxLockDelayResets = 15
		if cfg.Field.QueueSize < 5 {
			cfg.Field.QueueSize = 5
		}
	case DifficultyHard:
		cfg.Timing.LockDelayMs = 400
		cfg.Timing.MaxLockDelayResets = 5
		cfg.Field.QueueSize = 1
	}
}
