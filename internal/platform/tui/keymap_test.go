package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/blockfall/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
		quit bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft, false},
		{"a", runeKey("a"), core.ActionMoveLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateRight, false},
		{"x", runeKey("x"), core.ActionRotateRight, false},
		{"z", runeKey("z"), core.ActionRotateLeft, false},
		{"c", runeKey("c"), core.ActionHold, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"b", runeKey("b"), core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("y"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(runeKey("x"), &frame))
	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame))
	assert.False(t, km.MapKeyToFrame(runeKey("y"), &frame))
	assert.True(t, km.MapKeyToFrame(runeKey("q"), &frame))

	assert.Equal(t, []core.Action{core.ActionRotateRight, core.ActionMoveLeft, core.ActionQuit}, frame.Actions)
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey("l"), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("y"), MenuActionNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, km.MapKeyToMenuAction(tt.msg), tt.msg.String())
	}
}

func TestGameKeyMapHelp(t *testing.T) {
	keys := DefaultGameKeyMap()
	assert.NotEmpty(t, keys.ShortHelp())
	assert.Len(t, keys.FullHelp(), 3)
	for _, b := range keys.ShortHelp() {
		assert.NotEmpty(t, b.Help().Key)
	}
}
