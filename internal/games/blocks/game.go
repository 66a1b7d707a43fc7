// Package blocks implements the falling-block game on top of the engine
// package. It translates platform actions into engine commands, advances
// gravity by the fixed tick duration and draws the playfield.
package blocks

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMarathon Mode = "marathon" // Play until top out
	ModeSprint   Mode = "sprint"   // Clear a fixed number of lines as fast as possible
)

// bannerDuration is how long a clear announcement stays on screen.
const bannerDuration = 1500 * time.Millisecond

// Package-level settings, set once by the CLI before games are created.
var (
	settings  = config.DefaultBlocksConfig()
	openStore func(mode string) engine.Store
	logger    = log.New(io.Discard)
)

// boardMu serializes leaderboard read-modify-write cycles of games that
// share a store, such as concurrent SSH sessions.
var boardMu sync.Mutex

// SetConfig replaces the configuration used by new games.
func SetConfig(cfg config.BlocksConfig) {
	settings = cfg
}

// SetStore sets the factory for per-mode leaderboard storage.
// Without it each game keeps its leaderboard in memory.
func SetStore(fn func(mode string) engine.Store) {
	openStore = fn
}

// SetLogger sets the logger used by games and their leaderboards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game for the falling-block modes.
type Game struct {
	mode    Mode
	cfg     config.BlocksConfig
	runtime core.RuntimeConfig
	log     *log.Logger

	playfield   *engine.Playfield
	score       *engine.Score
	leaderboard *engine.Leaderboard

	tick     uint64
	tickDur  time.Duration
	gameOver bool
	cleared  bool
	paused   bool
	tooSmall bool

	submitted bool

	// Presentation state driven by engine events
	flashRows  []int
	flashLeft  time.Duration
	banner     string
	bannerLeft time.Duration
	chain      bool // Last clear was difficult
}

// New creates a new marathon game.
func New() *Game {
	return &Game{mode: ModeMarathon}
}

// NewSprint creates a new sprint game.
func NewSprint() *Game {
	return &Game{mode: ModeSprint}
}

func init() {
	registry.Register(string(ModeMarathon), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeSprint), func() registry.Game {
		return NewSprint()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Sprint"
	}
	return "Marathon"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = settings
	g.log = logger.With("mode", g.mode)

	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.tickDur = time.Second / time.Duration(runtime.TickRate)

	ecfg := g.cfg.Engine()
	if runtime.StartLevel > 0 {
		ecfg.StartLevel = runtime.StartLevel
	}

	pf, err := engine.NewPlayfield(ecfg, engine.WithSeed(runtime.Seed))
	if err != nil {
		g.log.Warn("invalid engine config, using defaults", "err", err)
		ecfg = engine.DefaultConfig()
		pf, _ = engine.NewPlayfield(ecfg, engine.WithSeed(runtime.Seed))
	}
	g.playfield = pf

	g.score = engine.NewScore()
	g.score.SetLinesPerLevel(ecfg.LinesPerLevel)
	g.score.Bind(pf)
	g.subscribe()

	if g.leaderboard == nil {
		g.leaderboard = g.newLeaderboard()
	}
	g.reloadLeaderboard()

	g.tick = 0
	g.gameOver = false
	g.cleared = false
	g.paused = false
	g.submitted = false
	g.flashRows = nil
	g.flashLeft = 0
	g.banner = ""
	g.bannerLeft = 0
	g.chain = false

	g.score.Reset(pf.Level())

	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

func (g *Game) newLeaderboard() *engine.Leaderboard {
	var store engine.Store
	if openStore != nil {
		store = openStore(string(g.mode))
	}
	if store == nil {
		store = engine.NewMemoryStore()
	}
	return engine.NewLeaderboard(g.cfg.Leaderboard.Size, store, engine.WithLogger(g.log))
}

// reloadLeaderboard picks up entries saved by other games since the last load.
func (g *Game) reloadLeaderboard() {
	boardMu.Lock()
	defer boardMu.Unlock()
	g.leaderboard.Load()
}

// subscribe wires presentation state to engine events.
func (g *Game) subscribe() {
	g.playfield.On(engine.EventLinesClearing, func(ev engine.Event) {
		e := ev.(engine.LinesClearing)
		g.flashRows = append(g.flashRows[:0], e.Rows...)
		g.flashLeft = g.cfg.ClearFlash()
	})
	g.playfield.On(engine.EventLinesCleared, func(ev engine.Event) {
		e := ev.(engine.LinesCleared)
		difficult := e.Count >= 4 || e.TSpin != engine.TSpinNone
		g.announce(clearName(e.Count, e.TSpin), difficult && g.chain)
		g.chain = difficult
	})
	g.playfield.On(engine.EventTSpin, func(ev engine.Event) {
		e := ev.(engine.TSpinPerformed)
		if e.LinesCleared == 0 {
			g.announce(clearName(0, e.TSpin), false)
			g.chain = true
		}
	})
	g.playfield.On(engine.EventLevelUpdated, func(ev engine.Event) {
		g.log.Debug("level changed", "level", ev.(engine.LevelUpdated).Level)
	})
	g.playfield.On(engine.EventToppedOut, func(engine.Event) {
		g.gameOver = true
		g.log.Debug("topped out", "points", g.score.Points(), "lines", g.score.Lines(), "ticks", g.tick)
	})
}

// announce shows a clear name on the banner.
func (g *Game) announce(name string, backToBack bool) {
	if backToBack {
		name = "B2B " + name
	}
	g.banner = name
	g.bannerLeft = bannerDuration
}

// clearName names a line clear for the banner.
func clearName(lines int, tSpin engine.TSpin) string {
	prefix := ""
	switch tSpin {
	case engine.TSpinMini:
		prefix = "T-SPIN MINI"
	case engine.TSpinFull:
		prefix = "T-SPIN"
	}

	var name string
	switch lines {
	case 1:
		name = "SINGLE"
	case 2:
		name = "DOUBLE"
	case 3:
		name = "TRIPLE"
	case 4:
		name = "TETRIS"
	}

	switch {
	case prefix != "" && name != "":
		return prefix + " " + name
	case prefix != "":
		return prefix
	default:
		return name
	}
}

// Resize updates the layout for new screen dimensions without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.playfield == nil {
		return
	}
	minW, minH := g.minScreenSize()
	g.tooSmall = w < minW || h < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	for _, a := range in.Actions {
		if cmd, ok := actionCommands[a]; ok {
			g.playfield.Execute(cmd)
		}
	}
	g.playfield.Update(g.tickDur)

	if g.flashLeft > 0 {
		g.flashLeft -= g.tickDur
	}
	if g.bannerLeft > 0 {
		g.bannerLeft -= g.tickDur
	}

	if g.mode == ModeSprint && !g.gameOver && g.score.Lines() >= g.cfg.Sprint.Lines {
		g.cleared = true
		g.gameOver = true
		g.log.Debug("sprint cleared", "elapsed", g.Elapsed())
	}

	return core.StepResult{State: g.State()}
}

// actionCommands maps platform actions to engine commands.
var actionCommands = map[core.Action]engine.Command{
	core.ActionMoveLeft:    engine.CommandMoveLeft,
	core.ActionMoveRight:   engine.CommandMoveRight,
	core.ActionSoftDrop:    engine.CommandSoftDrop,
	core.ActionHardDrop:    engine.CommandHardDrop,
	core.ActionRotateLeft:  engine.CommandRotateLeft,
	core.ActionRotateRight: engine.CommandRotateRight,
	core.ActionHold:        engine.CommandHold,
}

// Elapsed returns the play time, excluding pauses.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.tick) * g.tickDur
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.score == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.score.Points(),
		Lines:    g.score.Lines(),
		Level:    g.score.Level(),
		GameOver: g.gameOver,
		Cleared:  g.cleared,
		Paused:   g.paused,
		Elapsed:  g.Elapsed(),
	}
}

// Stats returns the current score line.
func (g *Game) Stats() engine.Stats {
	return g.score.Stats()
}

// Qualifies reports whether the finished game earns a leaderboard place.
// Games without points never qualify.
func (g *Game) Qualifies() bool {
	if !g.gameOver || g.submitted || g.score.Points() == 0 {
		return false
	}
	g.reloadLeaderboard()
	return g.leaderboard.Qualifies(g.score.Stats())
}

// Submit records the finished game under name and saves the leaderboard.
// The stored board is reloaded first so entries saved by other games since
// this one started are kept.
func (g *Game) Submit(name string) (bool, error) {
	if !g.gameOver || g.submitted {
		return false, nil
	}
	g.submitted = true

	boardMu.Lock()
	defer boardMu.Unlock()
	g.leaderboard.Load()
	if !g.leaderboard.Submit(g.score.Stats(), name, time.Now().UnixMilli()) {
		return false, nil
	}
	return true, g.leaderboard.Save()
}

// Leaderboard returns the current entries, best first.
func (g *Game) Leaderboard() []engine.LeaderboardEntry {
	return g.leaderboard.Entries()
}

var _ registry.Ranked = (*Game)(nil)
var _ registry.Resizer = (*Game)(nil)
