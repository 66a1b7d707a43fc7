package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right, A/D  - Move
  Down, S          - Soft drop
  Space            - Hard drop
  Up/X             - Rotate clockwise
  Z                - Rotate counterclockwise
  C                - Hold
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at level 1 with a longer lock delay and a 5-piece preview
  normal - Start at level 5
  hard   - Start at level 10 with a short lock delay and a 1-piece preview

Examples:
  blockfall play marathon
  blockfall play marathon --level 8
  blockfall play sprint --seed 42
  blockfall play marathon --difficulty hard
  blockfall play marathon --config ./my-blocks.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode := args[0]

	// Check if mode exists
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	s, err := startSession(true)
	if err != nil {
		fail("%v", err)
	}

	game, err := registry.Create(mode)
	if err != nil {
		s.Close()
		fail("creating game: %v", err)
	}

	cfg := runtimeConfig(s.cfg)
	s.logger.Info("starting game", "mode", mode, "level", cfg.StartLevel, "seed", cfg.Seed)

	_, runErr := tui.Run(game, s.store, cfg, tui.GameOptions{
		Player:    playerName(),
		FixedSeed: flagSeed != 0,
		Logger:    s.logger,
	})

	// Close store before potential exit
	s.Close()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
