package blocks

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// Visual constants
const (
	panelW     = 12 // Width of the side panels including borders
	cellW      = 2  // Screen columns per grid cell
	blockGlyph = '█'
	ghostGlyph = '░'
	flashGlyph = '▓'
	emptyGlyph = '·'
)

// shapeColors maps each shape to its guideline color.
var shapeColors = map[engine.Shape]core.Color{
	engine.ShapeI: core.ColorCyan,
	engine.ShapeJ: core.ColorBlue,
	engine.ShapeL: core.ColorOrange,
	engine.ShapeO: core.ColorYellow,
	engine.ShapeS: core.ColorGreen,
	engine.ShapeZ: core.ColorRed,
	engine.ShapeT: core.ColorPurple,
}

// ShapeColor returns the display color of a shape.
func ShapeColor(s engine.Shape) core.Color {
	if c, ok := shapeColors[s]; ok {
		return c
	}
	return core.ColorDefault
}

// wellSize returns the bordered size of the visible grid.
func (g *Game) wellSize() (int, int) {
	visible := g.playfield.Rows() - g.playfield.FirstVisibleRow()
	return g.playfield.Cols()*cellW + 2, visible + 2
}

// minScreenSize returns the smallest screen that fits the layout.
func (g *Game) minScreenSize() (int, int) {
	w, h := g.wellSize()
	return w + 2*(panelW+1), h + 1
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.playfield == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	wellW, wellH := g.wellSize()
	wellX := (g.runtime.ScreenW - wellW) / 2
	wellY := max(1, (g.runtime.ScreenH-wellH)/2)

	title := g.Title()
	dst.DrawTextColored(wellX+(wellW-len(title))/2, wellY-1, title, core.ColorBrightWhite)

	well := core.NewRect(wellX, wellY, wellW, wellH)
	g.renderWell(dst, well)
	g.renderHold(dst, wellX-panelW-1, wellY)
	g.renderStats(dst, wellX-panelW-1, wellY+6)
	g.renderQueue(dst, well.Right()+1, wellY)
	g.renderOverlays(dst, well)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	y := g.runtime.ScreenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// renderWell draws the bordered visible grid with ghost and active piece.
func (g *Game) renderWell(dst *core.Screen, well core.Rect) {
	pf := g.playfield
	fvr := pf.FirstVisibleRow()
	dst.DrawBox(well, core.ColorGray)
	x, y := well.X, well.Y

	grid := pf.Matrix(false)
	for r := fvr; r < pf.Rows(); r++ {
		for c := 0; c < pf.Cols(); c++ {
			sx, sy := x+1+c*cellW, y+1+r-fvr
			if v := grid[r][c]; v != engine.ShapeNone {
				drawCell(dst, sx, sy, blockGlyph, ShapeColor(v))
			} else {
				dst.SetColored(sx+1, sy, emptyGlyph, core.ColorDim)
			}
		}
	}

	if g.gameOver {
		return
	}

	piece := pf.Tetromino()
	color := ShapeColor(piece.Shape)
	for _, p := range pf.Ghost().Positions() {
		if p.Y >= fvr {
			drawCell(dst, x+1+p.X*cellW, y+1+p.Y-fvr, ghostGlyph, color)
		}
	}
	for _, p := range piece.Positions() {
		if p.Y >= fvr {
			drawCell(dst, x+1+p.X*cellW, y+1+p.Y-fvr, blockGlyph, color)
		}
	}

	if g.flashLeft > 0 {
		for _, r := range g.flashRows {
			if r < fvr {
				continue
			}
			for c := 0; c < pf.Cols(); c++ {
				drawCell(dst, x+1+c*cellW, y+1+r-fvr, flashGlyph, core.ColorBrightWhite)
			}
		}
	}
}

// drawCell draws one grid cell as two screen columns.
func drawCell(dst *core.Screen, x, y int, glyph rune, color core.Color) {
	dst.SetColored(x, y, glyph, color)
	dst.SetColored(x+1, y, glyph, color)
}

// drawPreview draws a shape at rotation 0 with its cells packed into the
// top-left corner of (x, y).
func drawPreview(dst *core.Screen, x, y int, shape engine.Shape, color core.Color) {
	points := engine.ShapePositions(shape, 0, 0, 0)
	minX, minY := points[0].X, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
	}
	for _, p := range points {
		drawCell(dst, x+(p.X-minX)*cellW, y+p.Y-minY, blockGlyph, color)
	}
}

// renderHold draws the hold panel. The held piece is grayed out while a
// swap is unavailable.
func (g *Game) renderHold(dst *core.Screen, x, y int) {
	dst.DrawBox(core.NewRect(x, y, panelW, 5), core.ColorGray)
	dst.DrawText(x+2, y, "HOLD")

	held := g.playfield.HeldShape()
	if !held.Valid() {
		return
	}
	color := ShapeColor(held)
	if !g.playfield.CanHold() {
		color = core.ColorGray
	}
	drawPreview(dst, x+2, y+2, held, color)
}

// renderQueue draws the upcoming pieces.
func (g *Game) renderQueue(dst *core.Screen, x, y int) {
	queue := g.playfield.Queue()
	h := max(5, len(queue)*3+2)
	dst.DrawBox(core.NewRect(x, y, panelW, h), core.ColorGray)
	dst.DrawText(x+2, y, "NEXT")

	for i, shape := range queue {
		drawPreview(dst, x+2, y+2+i*3, shape, ShapeColor(shape))
	}
}

// renderStats draws score, lines, level and the mode-specific counters.
func (g *Game) renderStats(dst *core.Screen, x, y int) {
	label := func(row int, name, value string) {
		dst.DrawTextColored(x, y+row*2, name, core.ColorGray)
		dst.DrawTextColored(x, y+row*2+1, value, core.ColorBrightWhite)
	}

	label(0, "SCORE", strconv.Itoa(g.score.Points()))
	label(1, "LEVEL", strconv.Itoa(g.score.Level()))

	if g.mode == ModeSprint {
		left := max(0, g.cfg.Sprint.Lines-g.score.Lines())
		label(2, "LINES LEFT", strconv.Itoa(left))
		label(3, "TIME", FormatDuration(g.Elapsed()))
	} else {
		label(2, "LINES", strconv.Itoa(g.score.Lines()))
		label(3, "BEST", strconv.Itoa(max(g.leaderboard.HighScore(), g.score.Points())))
	}

	if g.bannerLeft > 0 && g.banner != "" {
		dst.DrawTextColored(x, y+9, g.banner, core.ColorBrightYellow)
	}
}

// renderOverlays draws pause and game over messages over the well.
// Each message row is blanked first so the grid doesn't show through.
func (g *Game) renderOverlays(dst *core.Screen, well core.Rect) {
	var lines []string
	switch {
	case g.cleared:
		lines = []string{"CLEARED!", FormatDuration(g.Elapsed()), "", "R restart"}
	case g.gameOver:
		lines = []string{"GAME OVER", strconv.Itoa(g.score.Points()), "", "R restart"}
	case g.paused:
		lines = []string{"PAUSED", "", "P resume"}
	default:
		return
	}

	inner := well.Inner()
	top := inner.Y + (inner.H-len(lines))/2
	for i, line := range lines {
		row := top + i
		if !inner.Contains(inner.X, row) {
			continue
		}
		dst.DrawRect(core.NewRect(inner.X, row, inner.W, 1), ' ')
		lx := inner.X + (inner.W-len(line))/2
		dst.DrawTextColored(lx, row, line, core.ColorBrightWhite)
	}
}

// FormatDuration renders a play time as m:ss.cc.
func FormatDuration(d time.Duration) string {
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}
