package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/registry"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a variant",
	Long: `Display the top scores and play statistics for the specified variant.
--clear deletes the run history; the best score is kept.

Examples:
  dodge scores dodge
  dodge scores dodge_classic --limit 25
  dodge scores dodge --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs for the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		return clearRuns(os.Stdout, store, gameID, title)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dodge play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Time", "When")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %-8s  %s\n",
			i+1,
			humanize.Comma(int64(entry.Score)),
			entry.Duration.Round(time.Second).String(),
			humanize.Time(entry.CreatedAt),
		)
	}

	fmt.Println()
	if best, err := store.LoadHighScore(storage.HighScoreKey(gameID)); err == nil && best > 0 {
		fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Runs: %s  |  Average: %.1f  |  Time played: %s  |  Last: %s\n",
			humanize.Comma(int64(stats.GamesCount)),
			stats.AvgScore,
			stats.TotalDuration.Round(time.Second),
			humanize.Time(stats.LastPlayed),
		)
	}
	return nil
}

// clearRuns deletes the run history of gameID and reports what is left.
func clearRuns(w io.Writer, store *storage.Store, gameID, title string) error {
	if err := store.ClearScores(gameID); err != nil {
		return err
	}
	logger.Info("run history cleared", "game", gameID)

	fmt.Fprintf(w, "Cleared run history for %s.\n", title)
	if best, err := store.LoadHighScore(storage.HighScoreKey(gameID)); err == nil && best > 0 {
		fmt.Fprintf(w, "Best score kept: %s\n", humanize.Comma(int64(best)))
	}
	return nil
}
