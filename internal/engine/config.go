package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Defaults used when a Config field is left at its zero value.
const (
	DefaultQueueSize          = 3
	DefaultLockDelay          = 600 * time.Millisecond
	DefaultMaxLockDelayResets = 10
	DefaultLinesPerLevel      = 10
)

// Zero selects a default for LockDelay and MaxLockDelayResets, so these
// sentinels request an explicit zero.
const (
	// InstantLock locks a resting piece on the next update.
	InstantLock time.Duration = -1
	// NoLockDelayResets never arms the lock delay; resting pieces lock on
	// the next gravity step.
	NoLockDelayResets = -1
)

// DefaultLevelSpeeds is the guideline-style gravity curve, keyed by the
// first level each interval applies to.
func DefaultLevelSpeeds() map[int]time.Duration {
	return map[int]time.Duration{
		1:  800 * time.Millisecond,
		2:  720 * time.Millisecond,
		3:  630 * time.Millisecond,
		4:  550 * time.Millisecond,
		5:  470 * time.Millisecond,
		6:  380 * time.Millisecond,
		7:  300 * time.Millisecond,
		8:  220 * time.Millisecond,
		9:  130 * time.Millisecond,
		10: 100 * time.Millisecond,
		11: 80 * time.Millisecond,
		14: 70 * time.Millisecond,
		17: 50 * time.Millisecond,
		20: 30 * time.Millisecond,
		30: 20 * time.Millisecond,
	}
}

// Config holds construction-time settings for a Playfield.
//
// Cols and Rows are required. Rows includes the hidden buffer above
// FirstVisibleRow. Zero values for the remaining fields select defaults;
// use InstantLock and NoLockDelayResets for an explicit zero. A non-nil
// but empty LevelSpeeds is rejected.
type Config struct {
	Cols               int
	Rows               int
	FirstVisibleRow    int
	QueueSize          int
	LockDelay          time.Duration
	MaxLockDelayResets int
	LinesPerLevel      int
	StartLevel         int
	LevelSpeeds        map[int]time.Duration
}

// DefaultConfig returns a 10x20 visible field with an 8-row buffer.
func DefaultConfig() Config {
	return Config{
		Cols:               10,
		Rows:               28,
		FirstVisibleRow:    8,
		QueueSize:          DefaultQueueSize,
		LockDelay:          DefaultLockDelay,
		MaxLockDelayResets: DefaultMaxLockDelayResets,
		LinesPerLevel:      DefaultLinesPerLevel,
		StartLevel:         1,
		LevelSpeeds:        DefaultLevelSpeeds(),
	}
}

// withDefaults fills zero-valued optional fields and resolves sentinels.
// Apply it to a raw Config only: a resolved zero reads as unset again.
func (c Config) withDefaults() Config {
	if c.QueueSize == 0 {
		c.QueueSize = DefaultQueueSize
	}
	switch c.LockDelay {
	case 0:
		c.LockDelay = DefaultLockDelay
	case InstantLock:
		c.LockDelay = 0
	}
	switch c.MaxLockDelayResets {
	case 0:
		c.MaxLockDelayResets = DefaultMaxLockDelayResets
	case NoLockDelayResets:
		c.MaxLockDelayResets = 0
	}
	if c.LinesPerLevel == 0 {
		c.LinesPerLevel = DefaultLinesPerLevel
	}
	if c.StartLevel == 0 {
		c.StartLevel = 1
	}
	if c.LevelSpeeds == nil {
		c.LevelSpeeds = DefaultLevelSpeeds()
	}
	return c
}

// Validate checks the configuration after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.Cols <= 0 || c.Rows <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Cols, c.Rows)
	case c.FirstVisibleRow < 0 || c.FirstVisibleRow >= c.Rows:
		return fmt.Errorf("%w: first visible row %d outside [0, %d)", ErrInvalidConfig, c.FirstVisibleRow, c.Rows)
	case c.QueueSize < 0:
		return fmt.Errorf("%w: queue size %d is negative", ErrInvalidConfig, c.QueueSize)
	case c.LockDelay < 0:
		return fmt.Errorf("%w: lock delay %s is negative", ErrInvalidConfig, c.LockDelay)
	case c.MaxLockDelayResets < 0:
		return fmt.Errorf("%w: max lock delay resets %d is negative", ErrInvalidConfig, c.MaxLockDelayResets)
	case c.LinesPerLevel < 0:
		return fmt.Errorf("%w: lines per level %d is negative", ErrInvalidConfig, c.LinesPerLevel)
	case c.StartLevel < 1:
		return fmt.Errorf("%w: start level %d is below 1", ErrInvalidConfig, c.StartLevel)
	case len(c.LevelSpeeds) == 0:
		return fmt.Errorf("%w: level speed table is empty", ErrInvalidConfig)
	}
	for level, interval := range c.LevelSpeeds {
		if level < 1 {
			return fmt.Errorf("%w: speed table level %d is below 1", ErrInvalidConfig, level)
		}
		if interval <= 0 {
			return fmt.Errorf("%w: speed for level %d must be positive, got %s", ErrInvalidConfig, level, interval)
		}
	}
	return nil
}

// levelSpeed is one threshold of the sparse speed table.
type levelSpeed struct {
	level    int
	interval time.Duration
}

// speedTable is sorted by level ascending.
type speedTable []levelSpeed

func newSpeedTable(speeds map[int]time.Duration) speedTable {
	table := make(speedTable, 0, len(speeds))
	for level, interval := range speeds {
		table = append(table, levelSpeed{level: level, interval: interval})
	}
	sort.Slice(table, func(i, j int) bool {
		return table[i].level < table[j].level
	})
	return table
}

// lookup returns the interval of the largest threshold <= level. Levels
// below the first threshold use the first interval.
func (t speedTable) lookup(level int) time.Duration {
	i := sort.Search(len(t), func(i int) bool {
		return t[i].level > level
	})
	if i == 0 {
		return t[0].interval
	}
	return t[i-1].interval
}
