package blocks

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:       seed,
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		StartLevel: 1,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// topOut hard drops pieces in the center column until the stack overflows.
func topOut(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("Expected the game to top out")
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := New()
	g1.Reset(testConfig(12345))

	g2 := New()
	g2.Reset(testConfig(12345))

	script := map[int][]core.Action{
		10:  {core.ActionMoveLeft, core.ActionMoveLeft},
		30:  {core.ActionRotateRight},
		45:  {core.ActionHardDrop},
		60:  {core.ActionHold},
		90:  {core.ActionRotateLeft, core.ActionMoveRight},
		120: {core.ActionSoftDrop, core.ActionSoftDrop},
		150: {core.ActionHardDrop},
	}

	for i := 0; i < 600; i++ {
		in := frame(script[i]...)
		g1.Step(in)
		g2.Step(in)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()

	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("Snapshots diverged:\n%+v\n%+v", snap1, snap2)
	}
	if snap1.Tick != 600 {
		t.Errorf("Expected 600 ticks, got %d", snap1.Tick)
	}
}

func TestGravityAdvancesOnTicks(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	startY := g.Snapshot().PieceY

	// Level 1 drops every 800ms, which is 48 ticks at 60 ticks per second
	for i := 0; i < 48; i++ {
		g.Step(core.NewInputFrame())
	}
	if y := g.Snapshot().PieceY; y != startY {
		t.Fatalf("Piece should not fall before 800ms, moved from %d to %d", startY, y)
	}

	g.Step(core.NewInputFrame())
	if y := g.Snapshot().PieceY; y != startY+1 {
		t.Errorf("Piece should fall one row after 800ms, expected %d, got %d", startY+1, y)
	}
}

func TestHardDropScoresAndLocks(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))

	g.Step(frame(core.ActionHardDrop))

	state := g.State()
	if state.Score <= 0 || state.Score%2 != 0 {
		t.Errorf("Hard drop should score 2 per cell, got %d", state.Score)
	}

	grid := g.Snapshot().Grid
	if strings.Trim(grid[len(grid)-1], "-") == "" {
		t.Error("Bottom row should contain the locked piece")
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	before := g.Snapshot()

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Pause action should pause the game")
	}

	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionHardDrop))
	}

	after := g.Snapshot()
	if after.Tick != before.Tick || after.PieceY != before.PieceY || after.Score != 0 {
		t.Errorf("Paused game should not advance: %+v", after)
	}
	if after.State != StatePaused {
		t.Errorf("Expected state %q, got %q", StatePaused, after.State)
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("Second pause action should resume")
	}
}

func TestTopOutAndRestart(t *testing.T) {
	g := New()
	g.Reset(testConfig(99))

	topOut(t, g)

	if g.Snapshot().State != StateGameOver {
		t.Errorf("Expected game over state, got %q", g.Snapshot().State)
	}
	if g.State().Cleared {
		t.Error("Marathon top out should not count as cleared")
	}

	// Input is ignored after game over
	score := g.State().Score
	g.Step(frame(core.ActionHardDrop))
	if g.State().Score != score {
		t.Error("Game over should ignore gameplay input")
	}

	g.Step(frame(core.ActionRestart))
	state := g.State()
	if state.GameOver || state.Score != 0 || state.Lines != 0 {
		t.Errorf("Restart should begin a fresh game, got %+v", state)
	}
}

func TestSprintEndsAtLineTarget(t *testing.T) {
	g := NewSprint()
	g.Reset(testConfig(5))

	target := g.cfg.Sprint.Lines
	for i := 0; i < target; i++ {
		g.score.ClearLines(1, engine.TSpinNone)
	}
	g.Step(core.NewInputFrame())

	state := g.State()
	if !state.GameOver || !state.Cleared {
		t.Fatalf("Sprint should end cleared at %d lines, got %+v", target, state)
	}
	if g.Snapshot().State != StateCleared {
		t.Errorf("Expected cleared state, got %q", g.Snapshot().State)
	}
	if state.Elapsed != g.tickDur {
		t.Errorf("Elapsed = %s, expected one tick", state.Elapsed)
	}
}

func TestLeaderboardSubmission(t *testing.T) {
	store := engine.NewMemoryStore()
	SetStore(func(string) engine.Store { return store })
	t.Cleanup(func() { SetStore(nil) })

	g := New()
	g.Reset(testConfig(11))

	if g.Qualifies() {
		t.Error("A running game should not qualify")
	}

	topOut(t, g)

	if !g.Qualifies() {
		t.Fatal("First finished game should qualify for an empty board")
	}

	placed, err := g.Submit("ada")
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if !placed {
		t.Fatal("Submit() should place on an empty board")
	}
	if g.Qualifies() {
		t.Error("A submitted game should not qualify again")
	}
	if placed, _ := g.Submit("again"); placed {
		t.Error("Second submission should be ignored")
	}

	if _, ok, _ := store.GetItem(engine.LeaderboardKey); !ok {
		t.Error("Submit should persist the leaderboard")
	}

	// A new game reads the persisted board
	other := New()
	other.Reset(testConfig(12))
	entries := other.Leaderboard()
	if len(entries) != 1 || entries[0].Name != "ada" {
		t.Errorf("Expected persisted entry for ada, got %+v", entries)
	}
	if entries[0].Points != g.State().Score {
		t.Errorf("Expected %d points, got %d", g.State().Score, entries[0].Points)
	}
}

func TestLeaderboardSharedStore(t *testing.T) {
	store := engine.NewMemoryStore()
	SetStore(func(string) engine.Store { return store })
	t.Cleanup(func() { SetStore(nil) })

	// Both games load the empty board before either finishes
	a := New()
	a.Reset(testConfig(31))
	b := New()
	b.Reset(testConfig(32))

	topOut(t, a)
	topOut(t, b)

	if placed, err := a.Submit("alice"); err != nil || !placed {
		t.Fatalf("a.Submit() = %v, %v", placed, err)
	}
	if placed, err := b.Submit("bob"); err != nil || !placed {
		t.Fatalf("b.Submit() = %v, %v", placed, err)
	}

	stored := engine.NewLeaderboard(5, store)
	stored.Load()
	names := map[string]bool{}
	for _, e := range stored.Entries() {
		names[e.Name] = true
	}
	if len(names) != 2 || !names["alice"] || !names["bob"] {
		t.Errorf("Expected alice and bob to be stored, got %+v", stored.Entries())
	}

	// A restart picks up entries saved by other games
	a.Reset(testConfig(33))
	if got := len(a.Leaderboard()); got != 2 {
		t.Errorf("Expected 2 entries after restart, got %d", got)
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := New()
	g.Reset(testConfig(21))
	g.Step(frame(core.ActionHardDrop))
	before := g.Snapshot()

	g.Resize(120, 40)
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("Resize should not change game state")
	}

	g.Resize(20, 10)
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("Expected %q on a tiny screen, got %q", StatePausedSmall, g.Snapshot().State)
	}
	g.Step(frame(core.ActionHardDrop))
	if g.Snapshot().Tick != before.Tick {
		t.Error("Game should not advance while the window is too small")
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testConfig(8))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Marathon", "HOLD", "NEXT", "SCORE", "LEVEL", "LINES", "BEST"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}
	if !strings.ContainsRune(out, blockGlyph) {
		t.Error("Render should draw the active piece")
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("Paused game should show the pause overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	cfg := testConfig(8)
	cfg.ScreenW, cfg.ScreenH = 30, 12
	g.Reset(cfg)

	screen := core.NewScreen(30, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Expected too small message")
	}
}

func TestRenderSprintHUD(t *testing.T) {
	g := NewSprint()
	g.Reset(testConfig(8))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "LINES LEFT") || !strings.Contains(out, "TIME") {
		t.Error("Sprint HUD should show remaining lines and time")
	}
}

func TestClearName(t *testing.T) {
	tests := []struct {
		lines int
		tSpin engine.TSpin
		want  string
	}{
		{1, engine.TSpinNone, "SINGLE"},
		{4, engine.TSpinNone, "TETRIS"},
		{0, engine.TSpinMini, "T-SPIN MINI"},
		{0, engine.TSpinFull, "T-SPIN"},
		{2, engine.TSpinFull, "T-SPIN DOUBLE"},
		{1, engine.TSpinMini, "T-SPIN MINI SINGLE"},
	}

	for _, tt := range tests {
		if got := clearName(tt.lines, tt.tSpin); got != tt.want {
			t.Errorf("clearName(%d, %v) = %q, expected %q", tt.lines, tt.tSpin, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00.00"},
		{95*time.Second + 500*time.Millisecond, "1:35.50"},
		{10*time.Minute + 3*time.Second + 70*time.Millisecond, "10:03.07"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%s) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}

func TestShapeColors(t *testing.T) {
	seen := make(map[core.Color]bool)
	for _, s := range engine.AllShapes {
		c := ShapeColor(s)
		if c == core.ColorDefault {
			t.Errorf("Shape %v has no color", s)
		}
		if seen[c] {
			t.Errorf("Shape %v shares a color", s)
		}
		seen[c] = true
	}
}
