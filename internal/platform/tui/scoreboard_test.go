package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func TestScoreboardShowsLeaderboardAndRuns(t *testing.T) {
	store := openTestStore(t)

	lb := engine.NewLeaderboard(5, store.Bucket("fake"))
	lb.Submit(engine.Stats{Points: 1200, Lines: 12, Level: 2}, "ann", time.Now().UnixMilli())
	lb.Submit(engine.Stats{Points: 800, Lines: 8, Level: 1}, "bob", time.Now().UnixMilli())
	require.NoError(t, lb.Save())

	_, err := store.SaveRun(storage.Run{Mode: "fake", Player: "ann", Points: 1200, Lines: 12, Level: 2,
		Duration: 95 * time.Second, EndReason: storage.EndTopOut})
	require.NoError(t, err)

	m := NewScoreboardModel(store, 5, 100, 30)
	require.Len(t, m.rows, 2)
	assert.Equal(t, "#1", m.rows[0][0])
	assert.Equal(t, "ann", m.rows[0][1])
	assert.Equal(t, "1200", m.rows[0][2])
	assert.Contains(t, m.View(), "HIGH SCORES - Fake")

	next, _ := m.Update(runeKey("v"))
	m = next.(ScoreboardModel)
	require.Len(t, m.rows, 1)
	assert.Equal(t, "1:35", m.rows[0][3])
	assert.Equal(t, storage.EndTopOut, m.rows[0][4])
	assert.Contains(t, m.View(), "RECENT RUNS")
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 5, 60, 20)
	assert.Empty(t, m.rows)
	assert.Contains(t, m.View(), "No scores recorded yet.")
}
