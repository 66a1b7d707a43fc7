// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall                  - Start the interactive menu
//	blockfall list             - List available modes
//	blockfall play <mode>      - Play a mode directly
//	blockfall scores [mode]    - Show leaderboards
//	blockfall history [mode]   - Show recently recorded runs
//	blockfall serve            - Start SSH server for remote play
//	blockfall config init      - Write the default config to the user config dir
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: $XDG_DATA_HOME/blockfall/blockfall.db)
//	--config <path>       - Use a custom config YAML
//	--level <n>           - Start level
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/blockfall/internal/games/blocks"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevel      int
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle game for your terminal",
	Long: `Blockfall is a guideline-style falling-block puzzle game that runs
in your terminal or over SSH.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker (default)
  scores   - View leaderboards
  history  - View recently recorded runs
  serve    - Start SSH server for remote play
  config   - Manage the config file

Examples:
  blockfall
  blockfall play marathon --level 5
  blockfall play sprint --seed 42
  blockfall serve --ssh :2222
  blockfall scores marathon`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath(), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagLevel, "level", 0, "Start level (0 = from config or difficulty)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
