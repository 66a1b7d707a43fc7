package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// defaultDBPath is the scores database in the user's data directory.
func defaultDBPath() string {
	return filepath.Join(xdg.DataHome, "blockfall", "blockfall.db")
}

// newLogger builds the CLI logger. Interactive sessions log to a file in
// the state directory so output doesn't corrupt the terminal UI.
func newLogger(interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if interactive {
		path, pathErr := xdg.StateFile("blockfall/blockfall.log")
		if pathErr != nil {
			w = io.Discard
		} else {
			f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if openErr != nil {
				w = io.Discard
			} else {
				w, closer = f, f
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
		Level:           level,
	})
	return logger, closer, nil
}

// loadConfig loads the game config and applies the difficulty and level flags.
func loadConfig() (config.BlocksConfig, error) {
	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyBlocksPreset(&cfg, preset)
	}

	if flagLevel > 0 {
		cfg.Progression.StartLevel = flagLevel
	}

	return cfg, cfg.Validate()
}

// openStore opens the scores database, returning nil when it can't be opened.
// Games still work without storage.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// wireGames hands the shared config, logger and storage to the game package.
func wireGames(cfg config.BlocksConfig, store *storage.Store, logger *log.Logger) {
	blocks.SetConfig(cfg)
	blocks.SetLogger(logger)
	if store != nil {
		blocks.SetStore(func(mode string) engine.Store {
			return store.Bucket(mode)
		})
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig(cfg config.BlocksConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		StartLevel: cfg.Progression.StartLevel,
	}
}

// playerName is the default leaderboard name for local play.
func playerName() string {
	for _, key := range []string{"BLOCKFALL_PLAYER", "USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// session bundles what the interactive commands need.
type session struct {
	cfg    config.BlocksConfig
	store  *storage.Store
	logger *log.Logger
	closer io.Closer
}

// startSession loads config, opens storage and wires the games.
func startSession(interactive bool) (*session, error) {
	logger, closer, err := newLogger(interactive)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		closer.Close()
		return nil, err
	}

	store := openStore(logger)
	wireGames(cfg, store, logger)

	return &session{cfg: cfg, store: store, logger: logger, closer: closer}, nil
}

// Close releases the store and log file.
func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	s.closer.Close()
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
