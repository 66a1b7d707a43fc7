package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default game configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Field: FieldConfig{
			Cols:        10,
			VisibleRows: 20,
			BufferRows:  8,
			QueueSize:   3,
		},
		Timing: TimingConfig{
			LockDelayMs:        600,
			MaxLockDelayResets: 10,
			LevelSpeedsMs: map[int]int{
				1: 800, 2: 720, 3: 630, 4: 550, 5: 470,
				6: 380, 7: 300, 8: 220, 9: 130, 10: 100,
				11: 80, 14: 70, 17: 50, 20: 30, 30: 20,
			},
			ClearFlashMs: 250,
		},
		Progression: ProgressionConfig{
			StartLevel:    1,
			LinesPerLevel: 10,
		},
		Leaderboard: LeaderboardConfig{
			Size: 5,
		},
		Sprint: SprintConfig{
			Lines: 40,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
