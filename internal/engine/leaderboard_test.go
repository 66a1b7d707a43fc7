package engine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func points(n int) Stats {
	return Stats{Points: n}
}

func TestNewLeaderboardSizeFallback(t *testing.T) {
	for _, size := range []int{0, -3} {
		assert.Equal(t, DefaultLeaderboardSize, NewLeaderboard(size, nil).Max(), "size %d", size)
	}
	assert.Equal(t, 2, NewLeaderboard(2, nil).Max())
}

func TestLeaderboardHighScore(t *testing.T) {
	lb := NewLeaderboard(3, nil)
	assert.Zero(t, lb.HighScore())
	assert.False(t, lb.HasEntries())

	lb.Submit(points(1500), "", 0)
	assert.Equal(t, 1500, lb.HighScore())
	lb.Submit(points(1100), "", 0)
	assert.Equal(t, 1500, lb.HighScore())
	lb.Submit(points(1800), "", 0)
	assert.Equal(t, 1800, lb.HighScore())
	assert.True(t, lb.HasEntries())
}

func TestLeaderboardDropsEntriesWhenFull(t *testing.T) {
	lb := NewLeaderboard(2, nil)
	lb.Submit(points(1500), "", 0)
	lb.Submit(points(1600), "", 0)
	lb.Submit(points(1700), "", 0)

	entries := lb.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 1700, entries[0].Points)
	assert.Equal(t, 1600, entries[1].Points)
}

func TestLeaderboardSubmitReportsDrops(t *testing.T) {
	lb := NewLeaderboard(2, nil)
	assert.True(t, lb.Submit(points(1500), "", 0))
	assert.True(t, lb.Submit(points(1600), "", 0))
	assert.True(t, lb.Submit(points(1700), "", 0))
	assert.False(t, lb.Submit(points(1300), "", 0))
	assert.Len(t, lb.Entries(), 2)
}

func TestLeaderboardTiesRankAfterEarlierEntries(t *testing.T) {
	lb := NewLeaderboard(1, nil)
	assert.True(t, lb.Submit(Stats{Points: 1500}, "", 0))
	assert.True(t, lb.Submit(Stats{Points: 1500, Lines: 2}, "", 0))
	assert.False(t, lb.Submit(Stats{Points: 1500, Lines: 2}, "", 0))

	lb = NewLeaderboard(3, nil)
	lb.Submit(Stats{Points: 900, Lines: 4}, "first", 1)
	lb.Submit(Stats{Points: 900, Lines: 4}, "second", 2)
	lb.Submit(Stats{Points: 900, Lines: 6}, "third", 3)

	var names []string
	for _, e := range lb.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"third", "first", "second"}, names)
}

func TestLeaderboardQualifies(t *testing.T) {
	lb := NewLeaderboard(2, nil)
	assert.True(t, lb.Qualifies(points(0)))

	lb.Submit(points(100), "", 0)
	lb.Submit(points(200), "", 0)
	assert.False(t, lb.Qualifies(points(100)))
	assert.True(t, lb.Qualifies(points(101)))
	assert.True(t, lb.Qualifies(Stats{Points: 100, Lines: 1}))
}

func TestLeaderboardSaveAndLoad(t *testing.T) {
	store := NewMemoryStore()
	lb := NewLeaderboard(5, store)
	lb.Submit(Stats{Points: 1200, Lines: 8, Level: 1}, "ada", 1700000000000)
	lb.Submit(Stats{Points: 3400, Lines: 22, Level: 3}, "bob", 1700000001000)
	require.NoError(t, lb.Save())

	raw, ok, err := store.GetItem(LeaderboardKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"points":3400,"lines":22,"level":3,"name":"bob","time":1700000001000},
		{"points":1200,"lines":8,"level":1,"name":"ada","time":1700000000000}
	]`, raw)

	loaded := NewLeaderboard(5, store)
	loaded.Load()
	assert.Equal(t, lb.Entries(), loaded.Entries())
}

func TestLeaderboardLoadMissing(t *testing.T) {
	lb := NewLeaderboard(5, NewMemoryStore())

	var updates int
	lb.On(EventLeaderboardUpdated, func(Event) { updates++ })

	lb.Load()
	assert.False(t, lb.HasEntries())
	assert.Equal(t, 1, updates)
}

func TestLeaderboardLoadCorrupt(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetItem(LeaderboardKey, "{not json"))

	var buf bytes.Buffer
	lb := NewLeaderboard(5, store, WithLogger(log.New(&buf)))
	lb.Submit(points(10), "", 0)
	lb.Load()

	assert.False(t, lb.HasEntries())
	assert.Contains(t, buf.String(), "corrupt")
}

func TestLeaderboardLoadTruncatesToCapacity(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetItem(LeaderboardKey,
		`[{"points":3},{"points":2},{"points":1}]`))

	lb := NewLeaderboard(2, store)
	lb.Load()
	assert.Len(t, lb.Entries(), 2)
	assert.Equal(t, 3, lb.HighScore())
}

type failingStore struct{}

func (failingStore) GetItem(string) (string, bool, error) { return "", false, errors.New("boom") }
func (failingStore) SetItem(string, string) error         { return errors.New("boom") }

func TestLeaderboardStoreErrors(t *testing.T) {
	lb := NewLeaderboard(5, failingStore{})
	lb.Load()
	assert.False(t, lb.HasEntries())

	err := lb.Save()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine: save leaderboard")
}

func TestLeaderboardEntriesIsCopy(t *testing.T) {
	lb := NewLeaderboard(5, nil)
	lb.Submit(points(10), "x", 0)

	entries := lb.Entries()
	entries[0].Points = 99
	assert.Equal(t, 10, lb.HighScore())
}
