package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show leaderboards",
	Long: `Display the leaderboard for the specified mode, or for every mode
when none is given. Sprint also lists the fastest cleared runs.

Examples:
  blockfall scores
  blockfall scores marathon`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

// modesFromArgs returns the requested mode, or all registered modes.
func modesFromArgs(args []string) []registry.GameInfo {
	games := registry.List()
	if len(args) == 0 {
		return games
	}

	for _, g := range games {
		if g.ID == args[0] {
			return []registry.GameInfo{g}
		}
	}
	fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
	fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
	os.Exit(1)
	return nil
}

func runScores(_ *cobra.Command, args []string) {
	modes := modesFromArgs(args)

	s, err := startSession(false)
	if err != nil {
		fail("%v", err)
	}
	defer s.Close()

	if s.store == nil {
		fmt.Fprintln(os.Stderr, "Error: no scores database available")
		return
	}

	for i, g := range modes {
		if i > 0 {
			fmt.Println()
		}
		printLeaderboard(s, g)
	}
}

// printLeaderboard prints one mode's leaderboard and run summary.
func printLeaderboard(s *session, g registry.GameInfo) {
	lb := engine.NewLeaderboard(s.cfg.Leaderboard.Size, s.store.Bucket(g.ID), engine.WithLogger(s.logger))
	lb.Load()

	fmt.Printf("High Scores - %s\n", g.Title)
	fmt.Println()

	entries := lb.Entries()
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockfall play %s' to set the first high score!\n", g.ID)
	} else {
		fmt.Printf("  %-4s  %-12s  %-9s  %-5s  %-5s  %s\n", "Rank", "Name", "Score", "Lines", "Level", "Date")
		fmt.Printf("  %-4s  %-12s  %-9s  %-5s  %-5s  %s\n", "----", "----", "-----", "-----", "-----", "----")
		for i, e := range entries {
			date := time.UnixMilli(e.Time).Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-12s  %-9d  %-5d  %-5d  %s\n", i+1, e.Name, e.Points, e.Lines, e.Level, date)
		}
	}

	if g.ID == string(blocks.ModeSprint) {
		printFastest(s.store, g.ID)
	}

	stats, err := s.store.GetModeStats(g.ID)
	if err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Lines: %d  Last played: %s\n",
			stats.RunsCount, stats.HighScore, stats.AvgScore, stats.TotalLines,
			stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}

// printFastest lists the quickest cleared runs of mode.
func printFastest(store *storage.Store, mode string) {
	runs, err := store.FastestRuns(mode, 5)
	if err != nil || len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Fastest clears:")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %s\n", i+1, displayPlayer(r.Player), blocks.FormatDuration(r.Duration))
	}
}

func displayPlayer(p string) string {
	if p == "" {
		return "-"
	}
	return p
}
