package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// LeaderboardKey is the store key holding the serialized entries.
const LeaderboardKey = "lb1"

// DefaultLeaderboardSize is the number of entries kept by default.
const DefaultLeaderboardSize = 5

// Store is a string key-value store used for persistence.
type Store interface {
	// GetItem returns the value for key. ok is false when the key is absent.
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
}

// LeaderboardEntry is one ranked result. Time is in unix milliseconds.
type LeaderboardEntry struct {
	Stats
	Name string `json:"name"`
	Time int64  `json:"time"`
}

// Leaderboard is a bounded list of entries ordered by points, then lines.
// Entries of equal rank keep submission order.
type Leaderboard struct {
	Emitter

	max     int
	store   Store
	logger  *log.Logger
	entries []LeaderboardEntry
}

// LeaderboardOption configures a Leaderboard.
type LeaderboardOption func(*Leaderboard)

// WithLogger sets the logger used to report unreadable stored data.
func WithLogger(logger *log.Logger) LeaderboardOption {
	return func(l *Leaderboard) {
		l.logger = logger
	}
}

// NewLeaderboard creates an empty leaderboard holding at most max entries.
// A max below 1 selects DefaultLeaderboardSize, like the zero-valued fields
// of Config; callers reading sizes from user input validate them first.
// store may be nil, in which case Load and Save do nothing.
func NewLeaderboard(max int, store Store, opts ...LeaderboardOption) *Leaderboard {
	if max < 1 {
		max = DefaultLeaderboardSize
	}
	l := &Leaderboard{
		max:    max,
		store:  store,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Max returns the capacity.
func (l *Leaderboard) Max() int { return l.max }

// Load replaces the entries with the stored list. A missing value yields
// an empty board; unreadable data is logged and also yields an empty board.
func (l *Leaderboard) Load() {
	l.entries = nil
	defer l.Emit(LeaderboardUpdated{Leaderboard: l})

	if l.store == nil {
		return
	}
	raw, ok, err := l.store.GetItem(LeaderboardKey)
	if err != nil {
		l.logger.Warn("leaderboard: read failed", "key", LeaderboardKey, "err", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		l.logger.Warn("leaderboard: discarding corrupt data", "key", LeaderboardKey, "err", err)
		return
	}
	if len(entries) > l.max {
		entries = entries[:l.max]
	}
	l.entries = entries
}

// Save writes the entries to the store.
func (l *Leaderboard) Save() error {
	if l.store == nil {
		return nil
	}
	entries := l.entries
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("engine: encode leaderboard: %w", err)
	}
	if err := l.store.SetItem(LeaderboardKey, string(data)); err != nil {
		return fmt.Errorf("engine: save leaderboard: %w", err)
	}
	return nil
}

// insertIndex returns the position of the first entry stats beats, or -1.
func (l *Leaderboard) insertIndex(stats Stats) int {
	for i, e := range l.entries {
		if e.Points < stats.Points || (e.Points == stats.Points && e.Lines < stats.Lines) {
			return i
		}
	}
	return -1
}

// Qualifies reports whether stats would be kept by Submit.
func (l *Leaderboard) Qualifies(stats Stats) bool {
	return l.insertIndex(stats) != -1 || len(l.entries) < l.max
}

// Submit inserts a result in rank order. It returns false, leaving the
// board unchanged, when the board is full and the result ranks last.
func (l *Leaderboard) Submit(stats Stats, name string, time int64) bool {
	i := l.insertIndex(stats)
	if i == -1 {
		if len(l.entries) >= l.max {
			return false
		}
		i = len(l.entries)
	}

	entry := LeaderboardEntry{Stats: stats, Name: name, Time: time}
	l.entries = append(l.entries, LeaderboardEntry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = entry
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}

	l.Emit(LeaderboardUpdated{Leaderboard: l})
	return true
}

// HighScore returns the top entry's points, or 0 when empty.
func (l *Leaderboard) HighScore() int {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[0].Points
}

// HasEntries reports whether any entry exists.
func (l *Leaderboard) HasEntries() bool {
	return len(l.entries) > 0
}

// Entries returns a copy of the ranked entries.
func (l *Leaderboard) Entries() []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

// GetItem implements Store.
func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem implements Store.
func (s *MemoryStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}
