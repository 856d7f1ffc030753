package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var (
	flagSimDuration  time.Duration
	flagSimStep      time.Duration
	flagSimWidth     int
	flagSimHeight    int
	flagSimLookahead float64
	flagSimRecord    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [game]",
	Short: "Run a headless game with an autopilot",
	Long: `Run a variant without a terminal UI. A simple autopilot steers away
from the most imminent falling shape while the simulation advances in
fixed steps. The run ends at game over or when --duration of game time
has passed.

With --record the run is stored like a played game and may set a new
high score.

Examples:
  dodge simulate
  dodge simulate dodge_classic --duration 5m
  dodge simulate --seed 42 --difficulty hard --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.DurationVar(&flagSimDuration, "duration", 2*time.Minute, "Maximum game time to simulate")
	f.DurationVar(&flagSimStep, "dt", time.Second/60, "Simulation step")
	f.IntVar(&flagSimWidth, "width", 80, "Playfield width in cells")
	f.IntVar(&flagSimHeight, "height", 24, "Playfield height in cells")
	f.Float64Var(&flagSimLookahead, "lookahead", 0, "Autopilot lookahead in seconds (0 = default)")
	f.BoolVar(&flagSimRecord, "record", false, "Save the run to the scores database")
}

// simResult is the outcome of a headless run.
type simResult struct {
	Snapshot dodge.Snapshot
	Steps    int
	Stopped  bool
}

func runSimulate(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}
	if flagSimStep <= 0 {
		return fmt.Errorf("--dt must be positive")
	}

	cfg, err := loadGameConfig(gameID)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := dodge.Options{
		Config:   cfg,
		Viewport: dodge.Viewport{W: float64(flagSimWidth), H: float64(flagSimHeight)},
		Seed:     seed,
		Logger:   logger.With("game", gameID),
	}

	var store *storage.Store
	if flagSimRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open scores database: %w", err)
		}
		defer store.Close()
		opts.HighScores = storage.NewHighScoreKeeper(store, gameID)
	}

	res, err := simulate(opts, dodge.Autopilot{Lookahead: flagSimLookahead}, flagSimDuration, flagSimStep)
	if err != nil {
		return err
	}

	snap := res.Snapshot
	outcome := "survived"
	if res.Stopped {
		outcome = "game over"
	}

	fmt.Printf("Game:        %s (seed %d)\n", gameID, seed)
	fmt.Printf("Outcome:     %s after %s (%s steps)\n", outcome, snap.Elapsed.Round(time.Millisecond), humanize.Comma(int64(res.Steps)))
	fmt.Printf("Score:       %s\n", humanize.Comma(int64(snap.Score)))
	fmt.Printf("High score:  %s\n", humanize.Comma(int64(snap.HighScore)))
	fmt.Printf("Health:      %d/%d\n", snap.Player.Health, snap.MaxHealth)
	fmt.Printf("Escalations: %d\n", snap.Escalations)
	fmt.Printf("Spawn:       %s - %s\n", snap.Params.MinSpawn.Round(time.Millisecond), snap.Params.MaxSpawn.Round(time.Millisecond))
	fmt.Printf("Speed:       %.1f - %.1f cells/s\n", snap.Params.MinSpeed, snap.Params.MaxSpeed)

	if store != nil && snap.Score > 0 {
		if err := recordRun(os.Stdout, store, gameID, snap); err != nil {
			logger.Warn("cannot save run", "err", err)
		}
	}
	return nil
}

// recordRun stores the finished run and prints the row as read back from
// the database.
func recordRun(w io.Writer, store *storage.Store, gameID string, snap dodge.Snapshot) error {
	runID, err := store.SaveScore(gameID, snap.Score, snap.Elapsed)
	if err != nil {
		return err
	}
	entry, err := store.ScoreByRun(runID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("run %s missing after save", runID)
	}
	logger.Info("run saved", "run_id", entry.RunID)

	fmt.Fprintf(w, "Recorded:    run %s, score %s, survived %s\n",
		entry.RunID,
		humanize.Comma(int64(entry.Score)),
		entry.Duration.Round(time.Millisecond),
	)
	return nil
}

// pilot picks a steering direction each step.
type pilot interface {
	Decide(snap dodge.Snapshot) dodge.Direction
}

// simulate plays one run until the engine stops or limit of game time has
// passed.
func simulate(opts dodge.Options, p pilot, limit, dt time.Duration) (simResult, error) {
	stopped := false
	opts.OnStop = func() { stopped = true }

	eng, err := dodge.NewEngine(opts)
	if err != nil {
		return simResult{}, err
	}
	eng.Start()

	steps := 0
	for !stopped && eng.Session().Elapsed() < limit {
		eng.SetPlayerIntent(p.Decide(eng.Snapshot()))
		eng.Advance(dt)
		steps++
	}

	return simResult{Snapshot: eng.Snapshot(), Steps: steps, Stopped: stopped}, nil
}
