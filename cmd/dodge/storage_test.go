package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
	"github.com/vovakirdan/tui-dodge/internal/registry"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

func openCLIStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrintGameListShowsStats(t *testing.T) {
	store := openCLIStore(t)
	store.SaveScore(dodge.IDShapes, 1200, 30*time.Second)
	store.SaveScore(dodge.IDShapes, 80, 5*time.Second)

	stats, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}

	games := []registry.GameInfo{
		{ID: dodge.IDShapes, Title: "Dodge"},
		{ID: dodge.IDClassic, Title: "Dodge Classic"},
	}
	var buf bytes.Buffer
	printGameList(&buf, games, stats)

	lines := strings.Split(buf.String(), "\n")
	var shapes, classic string
	for _, l := range lines {
		fields := strings.Fields(l)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case dodge.IDShapes:
			shapes = l
		case dodge.IDClassic:
			classic = l
		}
	}

	if !strings.Contains(shapes, "1,200") || !strings.Contains(shapes, " 2 ") {
		t.Errorf("shapes row = %q, want 2 runs and best 1,200", shapes)
	}
	if strings.Count(classic, "-") < 3 {
		t.Errorf("classic row = %q, want dashes for a variant without runs", classic)
	}
}

func TestPrintGameListEmpty(t *testing.T) {
	var buf bytes.Buffer
	printGameList(&buf, nil, nil)
	if !strings.Contains(buf.String(), "No games available") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestClearRunsKeepsBest(t *testing.T) {
	store := openCLIStore(t)
	store.SaveScore(dodge.IDShapes, 300, time.Second)
	store.SaveScore(dodge.IDClassic, 70, time.Second)
	store.SaveHighScore(storage.HighScoreKey(dodge.IDShapes), 300)

	var buf bytes.Buffer
	if err := clearRuns(&buf, store, dodge.IDShapes, "Dodge"); err != nil {
		t.Fatalf("clearRuns: %v", err)
	}

	if runs, _ := store.TopScores(dodge.IDShapes, 10); len(runs) != 0 {
		t.Errorf("runs left = %d, want 0", len(runs))
	}
	if runs, _ := store.TopScores(dodge.IDClassic, 10); len(runs) != 1 {
		t.Errorf("classic runs = %d, want 1 untouched", len(runs))
	}
	if !strings.Contains(buf.String(), "Best score kept: 300") {
		t.Errorf("output = %q, want kept best", buf.String())
	}
}

func TestRecordRunPrintsSavedRow(t *testing.T) {
	store := openCLIStore(t)
	snap := dodge.Snapshot{Score: 4321, Elapsed: 12345 * time.Millisecond}

	var buf bytes.Buffer
	if err := recordRun(&buf, store, dodge.IDClassic, snap); err != nil {
		t.Fatalf("recordRun: %v", err)
	}

	runs, err := store.TopScores(dodge.IDClassic, 10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("TopScores() = %v, %v; want one run", runs, err)
	}
	out := buf.String()
	if !strings.Contains(out, runs[0].RunID) {
		t.Errorf("output = %q, want run id %s", out, runs[0].RunID)
	}
	if !strings.Contains(out, "4,321") || !strings.Contains(out, "12.345s") {
		t.Errorf("output = %q, want stored score and duration", out)
	}
}
