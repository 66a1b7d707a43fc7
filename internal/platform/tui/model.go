package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// maxNameLen bounds leaderboard names.
const maxNameLen = 12

// GameOptions tunes a GameModel beyond its runtime config.
type GameOptions struct {
	Player    string      // Default leaderboard name and run owner
	FixedSeed bool        // Keep cfg.Seed on restart instead of reseeding
	AllowBack bool        // Whether B returns to a menu
	Logger    *log.Logger // Defaults to a discarding logger
}

// GameModel is the Bubble Tea model for a single game session.
// It is used directly for local play and embedded by SessionModel over SSH.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       GameOptions
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	nameInput  textinput.Model
	naming     bool // Name prompt is active
	prompted   bool // Name prompt was offered for this game
	runSaved   bool // Run has been recorded for this game
	notice     string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model running game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = opts.Player
	ti.CharLimit = maxNameLen
	ti.Width = maxNameLen + 1
	ti.Prompt = "Name: "

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		nameInput:  ti,
	}
}

// gameHeight reserves the bottom row for the help line.
func gameHeight(h int) int {
	return max(h-1, 1)
}

// gameConfig is the runtime config seen by the game.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.opts.Logger.Debug("game started", "mode", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input during play.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quit()
		return m, tea.Quit

	case action == core.ActionBack:
		if m.opts.AllowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.quit()
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil

	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.restart()
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleNameKey feeds the leaderboard name prompt.
func (m GameModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.naming = false
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			name = m.opts.Player
		}
		if name == "" {
			name = "anonymous"
		}
		m.submit(name)
		return m, nil

	case tea.KeyEsc:
		m.naming = false
		m.nameInput.Blur()
		m.notice = "Score not ranked"
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// submit places the finished game on the leaderboard.
func (m *GameModel) submit(name string) {
	m.naming = false
	m.nameInput.Blur()

	ranked, ok := m.game.(registry.Ranked)
	if !ok {
		return
	}
	placed, err := ranked.Submit(name)
	switch {
	case err != nil:
		m.opts.Logger.Error("could not save leaderboard", "mode", m.game.ID(), "error", err)
		m.notice = "Leaderboard not saved"
	case placed:
		m.opts.Logger.Info("leaderboard entry", "mode", m.game.ID(), "name", name, "score", m.gameState.Score)
		m.notice = fmt.Sprintf("Ranked as %s", name)
	default:
		m.notice = "Score did not place"
	}
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
		return m, nil
	}

	// Games without resize support start over at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !wasOver {
		m.finish()
	}

	return m, tickCmd(m.config.TickRate)
}

// finish records the run and opens the name prompt when it ranks.
func (m *GameModel) finish() {
	reason := storage.EndTopOut
	if m.gameState.Cleared {
		reason = storage.EndCleared
	}
	m.recordRun(reason)

	if m.prompted {
		return
	}
	m.prompted = true
	if ranked, ok := m.game.(registry.Ranked); ok && ranked.Qualifies() {
		m.naming = true
		m.nameInput.SetValue("")
		m.nameInput.Focus()
	}
}

// restart begins a new game, reseeding unless the seed was fixed.
func (m *GameModel) restart() {
	if !m.opts.FixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.gameConfig())
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	m.runSaved = false
	m.prompted = false
	m.naming = false
	m.notice = ""
}

// quit records an abandoned game before leaving.
func (m *GameModel) quit() {
	m.quitting = true
	if !m.gameState.GameOver && m.gameState.Score > 0 {
		m.recordRun(storage.EndQuit)
	}
}

// recordRun saves the current game to the run history once.
func (m *GameModel) recordRun(reason string) {
	if m.runSaved || m.store == nil {
		return
	}
	m.runSaved = true

	id, err := m.store.SaveRun(storage.Run{
		Mode:      m.game.ID(),
		Player:    m.opts.Player,
		Points:    m.gameState.Score,
		Lines:     m.gameState.Lines,
		Level:     m.gameState.Level,
		Duration:  m.gameState.Elapsed,
		EndReason: reason,
	})
	if err != nil {
		m.opts.Logger.Error("could not save run", "mode", m.game.ID(), "error", err)
		return
	}
	m.opts.Logger.Debug("run saved", "id", id, "mode", m.game.ID(), "reason", reason)
}

// saveScreenshot saves the current screen to the user's data directory.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	timestamp := time.Now().Format("20060102_150405")
	path, err := xdg.DataFile(fmt.Sprintf("blockfall/screenshots/%s_%s.txt", m.game.ID(), timestamp))
	if err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.notice = "Screenshot saved"
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// statusLine is the single row below the game: name prompt, notice or help.
func (m GameModel) statusLine() string {
	if m.naming {
		return promptStyle.Render("New high score! ") + m.nameInput.View() +
			helpStyle.Render("  enter save · esc skip")
	}
	if m.notice != "" && m.gameState.GameOver {
		return noticeStyle.Render(m.notice) + helpStyle.Render("  r restart · q quit")
	}
	return helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting && !m.backToMenu
}

// BackToMenu reports whether the player asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for game and blocks until it exits.
// Returns true when the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) (bool, error) {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
