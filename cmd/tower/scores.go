package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TomNeyland/endless-tower/internal/platform/tui"
	"github.com/TomNeyland/endless-tower/internal/storage"
)

var (
	flagRecent      bool
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history and best record",
	Long: `Display the top 10 runs and the all-time best record.

Examples:
  tower scores
  tower scores --recent
  tower scores --interactive
  tower scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show most recent runs instead of best")
	scoresCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse runs in an interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (the best record is kept)")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, sbErr := tui.RunScoreboard(store, width, height); sbErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			os.Exit(1)
		}
		return
	}

	var runs []storage.RunResult
	if flagRecent {
		runs, err = store.RecentRuns(10)
	} else {
		runs, err = store.TopRuns(10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if flagRecent {
		fmt.Println("Recent Runs - Endless Tower")
	} else {
		fmt.Println("Best Runs - Endless Tower")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tower play' to set the first record!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-7s  %-6s  %-8s  %s\n",
		"Rank", "Score", "Height", "Time", "Chain", "Perfect", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %-7s  %-6s  %-8s  %s\n",
		"----", "-----", "------", "----", "-----", "-------", "----")

	for i, r := range runs {
		d := time.Duration(r.SurvivalMs) * time.Millisecond
		timeStr := fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-7d  %-7s  %-6d  %d/%-6d  %s\n",
			i+1, r.Score, r.Height, timeStr, r.LongestChain,
			r.PerfectBounces, r.TotalBounces, dateStr)
	}

	rec, err := store.HighScore()
	if err != nil {
		return
	}

	d := time.Duration(rec.BestSurvivalMs) * time.Millisecond
	fmt.Println()
	fmt.Printf("Best record: height %d, score %d, time %d:%02d, chain x%d\n",
		rec.BestHeight, rec.BestScore, int(d.Minutes()), int(d.Seconds())%60, rec.BestCombo)
	fmt.Printf("Games played: %d\n", rec.GamesPlayed)
}
