package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blocks"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Show recently recorded runs",
	Long: `List the most recent runs, newest first. Every finished or abandoned
game with points is recorded.

Examples:
  blockfall history
  blockfall history sprint --limit 50
  blockfall history marathon --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs instead of listing them")
}

func runHistory(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		mode = modesFromArgs(args)[0].ID
	}

	s, err := startSession(false)
	if err != nil {
		fail("%v", err)
	}
	defer s.Close()

	if s.store == nil {
		fail("no scores database available")
	}

	if flagHistoryClear {
		if err := s.store.ClearRuns(mode); err != nil {
			fail("clearing runs: %v", err)
		}
		fmt.Println("Run history cleared.")
		return
	}

	runs, err := s.store.RecentRuns(mode, flagHistoryLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-9s  %-12s  %-9s  %-5s  %-5s  %-8s  %s\n",
		"Date", "Mode", "Player", "Score", "Lines", "Level", "Time", "End")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-9s  %-12s  %-9d  %-5d  %-5d  %-8s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, displayPlayer(r.Player),
			r.Points, r.Lines, r.Level, blocks.FormatDuration(r.Duration), r.EndReason)
	}
}
