package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "SCORE")
	s.DrawTextColored(6, 0, "100", core.ColorBrightYellow)
	s.SetColored(0, 1, '█', core.ColorCyan)
	s.SetColored(1, 1, '█', core.ColorCyan)
	s.SetColored(2, 1, '█', core.ColorRed)
	s.SetColored(3, 1, '·', core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "SCORE")
	assert.Contains(t, lines[0], "100")
	assert.Contains(t, lines[1], "███")
	assert.Contains(t, lines[1], "·")
}

func TestColorStylesCoverPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorBrightYellow; c++ {
		_, ok := colorStyles[c]
		assert.True(t, ok, "missing style for color %d", c)
	}
}
