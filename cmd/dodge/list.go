package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/registry"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows all game variants registered in the arcade with their recorded runs.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	var stats map[string]*storage.GameStats
	if store := openStore(); store != nil {
		all, err := store.GetAllGamesStats()
		if err != nil {
			logger.Warn("cannot load game stats", "err", err)
		}
		stats = all
		store.Close()
	}

	printGameList(os.Stdout, registry.List(), stats)
}

// printGameList writes the variant table. Variants without recorded runs
// show dashes.
func printGameList(w io.Writer, games []registry.GameInfo, stats map[string]*storage.GameStats) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games available.")
		return
	}

	fmt.Fprintln(w, "Available games:")
	fmt.Fprintln(w)

	maxIDLen, maxTitleLen := 2, 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	row := func(id, title, runs, best, last string) {
		fmt.Fprintf(w, "  %-*s  %-*s  %6s  %8s  %s\n", maxIDLen, id, maxTitleLen, title, runs, best, last)
	}
	row("ID", "Title", "Runs", "Best", "Last played")
	row("--", "-----", "----", "----", "-----------")

	for _, g := range games {
		gs, ok := stats[g.ID]
		if !ok || gs.GamesCount == 0 {
			row(g.ID, g.Title, "-", "-", "-")
			continue
		}
		row(g.ID, g.Title,
			humanize.Comma(int64(gs.GamesCount)),
			humanize.Comma(int64(gs.BestRun)),
			humanize.Time(gs.LastPlayed),
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'dodge play <id>' to play a game.")
}
