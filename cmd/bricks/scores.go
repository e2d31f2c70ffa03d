package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bricks/internal/platform/tui"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the recorded high scores.

Opens an interactive table in a terminal; use --plain (or pipe the
output) for a text listing.

Examples:
  bricks scores
  bricks scores --plain --limit 5
  bricks scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text listing")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores in the plain listing")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive && !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.TopScores(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Bricks")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bricks play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-9s  %-12s  %s\n", "Rank", "Score", "Level", "Result", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-9s  %-12s  %s\n", "----", "-----", "-----", "------", "------", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-9s  %-12s  %s\n",
			i+1, entry.Score, entry.Level, entry.Outcome, entry.Player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Best: %d   Runs: %d   Won: %d\n", stats.HighScore, stats.Runs, stats.Wins)
	}
	return nil
}
