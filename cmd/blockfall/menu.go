package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start blockfall with a mode picker menu",
	Long: `Start blockfall in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to pick the start level,
and Enter to select a mode. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change start level
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  blockfall menu
  blockfall menu --fps 30
  blockfall menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	s, err := startSession(true)
	if err != nil {
		fail("%v", err)
	}
	defer s.Close()

	cfg := runtimeConfig(s.cfg)
	player := playerName()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size or level changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(s.store, s.cfg.Leaderboard.Size, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// New seed for each game unless one was given
		gameCfg := cfg
		if flagSeed == 0 {
			gameCfg.Seed = time.Now().UnixNano()
		}

		s.logger.Info("starting game", "mode", game.ID(), "level", gameCfg.StartLevel)
		back, err := tui.Run(game, s.store, gameCfg, tui.GameOptions{
			Player:    player,
			FixedSeed: flagSeed != 0,
			AllowBack: true,
			Logger:    s.logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			break
		}
		if !back {
			break
		}
	}
}
