// Package config provides YAML-based game configuration loading and
// difficulty presets for blockfall.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// BlocksConfig contains all configuration for the falling-block game.
type BlocksConfig struct {
	Field       FieldConfig       `yaml:"field"`
	Timing      TimingConfig      `yaml:"timing"`
	Progression ProgressionConfig `yaml:"progression"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Sprint      SprintConfig      `yaml:"sprint"`
}

// FieldConfig defines the matrix dimensions.
type FieldConfig struct {
	Cols        int `yaml:"cols"`
	VisibleRows int `yaml:"visible_rows"`
	BufferRows  int `yaml:"buffer_rows"` // Hidden rows above the visible area
	QueueSize   int `yaml:"queue_size"`
}

// TimingConfig defines lock delay and gravity. Durations are milliseconds.
type TimingConfig struct {
	LockDelayMs        int         `yaml:"lock_delay_ms"`
	MaxLockDelayResets int         `yaml:"max_lock_delay_resets"`
	LevelSpeedsMs      map[int]int `yaml:"level_speeds_ms"` // First level -> drop interval
	ClearFlashMs       int         `yaml:"clear_flash_ms"`  // Line-clear flash shown by the frontend
}

// ProgressionConfig defines how the level advances.
type ProgressionConfig struct {
	StartLevel    int `yaml:"start_level"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// LeaderboardConfig defines the high score table.
type LeaderboardConfig struct {
	Size int `yaml:"size"`
}

// SprintConfig defines the line target of sprint mode.
type SprintConfig struct {
	Lines int `yaml:"lines"`
}

// Validate reports the first problem found in the configuration.
func (c BlocksConfig) Validate() error {
	switch {
	case c.Field.Cols < 4:
		return fmt.Errorf("%w: field.cols must be at least 4, got %d", ErrInvalid, c.Field.Cols)
	case c.Field.VisibleRows < 4:
		return fmt.Errorf("%w: field.visible_rows must be at least 4, got %d", ErrInvalid, c.Field.VisibleRows)
	case c.Field.BufferRows < 2:
		return fmt.Errorf("%w: field.buffer_rows must be at least 2, got %d", ErrInvalid, c.Field.BufferRows)
	case c.Field.QueueSize < 0:
		return fmt.Errorf("%w: field.queue_size is negative", ErrInvalid)
	case c.Timing.LockDelayMs < 0:
		return fmt.Errorf("%w: timing.lock_delay_ms is negative", ErrInvalid)
	case c.Timing.MaxLockDelayResets < 0:
		return fmt.Errorf("%w: timing.max_lock_delay_resets is negative", ErrInvalid)
	case c.Timing.ClearFlashMs < 0:
		return fmt.Errorf("%w: timing.clear_flash_ms is negative", ErrInvalid)
	case c.Progression.StartLevel < 1:
		return fmt.Errorf("%w: progression.start_level must be at least 1, got %d", ErrInvalid, c.Progression.StartLevel)
	case c.Progression.LinesPerLevel < 1:
		return fmt.Errorf("%w: progression.lines_per_level must be at least 1, got %d", ErrInvalid, c.Progression.LinesPerLevel)
	case c.Leaderboard.Size < 1:
		return fmt.Errorf("%w: leaderboard.size must be at least 1, got %d", ErrInvalid, c.Leaderboard.Size)
	case c.Sprint.Lines < 1:
		return fmt.Errorf("%w: sprint.lines must be at least 1, got %d", ErrInvalid, c.Sprint.Lines)
	}
	for level, ms := range c.Timing.LevelSpeedsMs {
		if level < 1 || ms <= 0 {
			return fmt.Errorf("%w: timing.level_speeds_ms entry %d: %d", ErrInvalid, level, ms)
		}
	}
	return nil
}

// Engine converts the file configuration to the engine's settings.
func (c BlocksConfig) Engine() engine.Config {
	var speeds map[int]time.Duration
	if len(c.Timing.LevelSpeedsMs) > 0 {
		speeds = make(map[int]time.Duration, len(c.Timing.LevelSpeedsMs))
		for level, ms := range c.Timing.LevelSpeedsMs {
			speeds[level] = time.Duration(ms) * time.Millisecond
		}
	}
	// Zero in the file is a real setting, not "use the default".
	lockDelay := time.Duration(c.Timing.LockDelayMs) * time.Millisecond
	if lockDelay == 0 {
		lockDelay = engine.InstantLock
	}
	resets := c.Timing.MaxLockDelayResets
	if resets == 0 {
		resets = engine.NoLockDelayResets
	}
	return engine.Config{
		Cols:               c.Field.Cols,
		Rows:               c.Field.VisibleRows + c.Field.BufferRows,
		FirstVisibleRow:    c.Field.BufferRows,
		QueueSize:          c.Field.QueueSize,
		LockDelay:          lockDelay,
		MaxLockDelayResets: resets,
		LinesPerLevel:      c.Progression.LinesPerLevel,
		StartLevel:         c.Progression.StartLevel,
		LevelSpeeds:        speeds,
	}
}

// ClearFlash returns how long cleared rows stay highlighted.
func (c BlocksConfig) ClearFlash() time.Duration {
	return time.Duration(c.Timing.ClearFlashMs) * time.Millisecond
}
