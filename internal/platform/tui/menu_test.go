package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm
}

func newTestMenu() MenuModel {
	return NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, StartLevel: 3})
}

func TestMenuListsModesAndCommands(t *testing.T) {
	m := newTestMenu()

	require.Len(t, m.items, 3)
	assert.Equal(t, "fake", m.items[0].GameID)
	assert.Equal(t, "High Scores", m.items[1].Title)
	assert.Equal(t, "Quit", m.items[2].Title)

	view := m.View()
	assert.Contains(t, view, "B L O C K F A L L")
	assert.Contains(t, view, "Fake")
	assert.Contains(t, view, "Start level: <  3 >")
}

func TestMenuSelectMode(t *testing.T) {
	m := newTestMenu()

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.result()
	assert.Equal(t, "fake", res.GameID)
	assert.Equal(t, 4, res.Config.StartLevel)
	assert.False(t, res.Quit)
}

func TestMenuLevelBounds(t *testing.T) {
	m := newTestMenu()
	for i := 0; i < MaxStartLevel+5; i++ {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, MaxStartLevel, m.StartLevel())

	for i := 0; i < MaxStartLevel+5; i++ {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, 1, m.StartLevel())
}

func TestMenuCommands(t *testing.T) {
	m := newTestMenu()
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.result().WantsScoreboard)

	m = newTestMenu()
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.result().WantsScoreboard)

	m = newTestMenu()
	for i := 0; i < 5; i++ {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.result().Quit)
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   ab", centerText("ab", 8))
	assert.Equal(t, "toolong", centerText("toolong", 3))
}
