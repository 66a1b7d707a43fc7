package blocks

import "strings"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateCleared     GameStateType = "cleared"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Score      int
	Lines      int
	Level      int
	Piece      string // Active shape letter
	PieceX     int
	PieceY     int
	Rotation   int
	Held       string
	Queue      string   // Upcoming shape letters, next first
	Grid       []string // Locked cells, one string per row, "-" for empty
	NextStep   int64    // Milliseconds until the next gravity step
	BackToBack bool
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.cleared:
		state = StateCleared
	case g.gameOver:
		state = StateGameOver
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	pf := g.playfield
	piece := pf.Tetromino()

	var queue strings.Builder
	for _, s := range pf.Queue() {
		queue.WriteString(s.String())
	}

	grid := pf.Matrix(false)
	rows := make([]string, len(grid))
	for r, row := range grid {
		var sb strings.Builder
		for _, v := range row {
			sb.WriteString(v.String())
		}
		rows[r] = sb.String()
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Score:      g.score.Points(),
		Lines:      g.score.Lines(),
		Level:      g.score.Level(),
		Piece:      piece.Shape.String(),
		PieceX:     piece.X,
		PieceY:     piece.Y,
		Rotation:   piece.Rotation,
		Held:       pf.HeldShape().String(),
		Queue:      queue.String(),
		Grid:       rows,
		NextStep:   pf.NextStep().Milliseconds(),
		BackToBack: g.score.BackToBack(),
		State:      state,
	}
}
