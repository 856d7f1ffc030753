// dodge is a terminal arcade game: you play a shape sliding along the bottom
// of the screen, keeping clear of the shapes raining down.
//
// Usage:
//
//	dodge list                 - List available variants
//	dodge play [game]          - Play a variant (default: dodge)
//	dodge menu                 - Pick variants interactively
//	dodge scores <game>        - Show high scores for a variant (--clear to reset)
//	dodge serve                - Start SSH server for remote play
//	dodge simulate [game]      - Run a headless game with an autopilot
//	dodge config [game]        - Print the effective config as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logger  = log.New(io.Discard)
	logFile *os.File
)

var _ dodge.HighScoreStore = (*storage.HighScoreKeeper)(nil)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodge",
	Short: "Dodge - steer clear of falling shapes in your terminal",
	Long: `Dodge is a terminal arcade game: you are a shape sliding along the bottom
of the screen, keeping away from the shapes raining down. Every shape that falls
past you scores points; every hit costs health.

Available commands:
  list      - Show all variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  scores    - View high scores
  serve     - Start SSH server for remote play
  simulate  - Run a headless game with an autopilot
  config    - Print the effective config

Examples:
  dodge play
  dodge play dodge_classic
  dodge play --difficulty hard
  dodge simulate --duration 2m --seed 42
  dodge serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// setup validates global flags, builds the logger and configures the games.
func setup(cmd *cobra.Command, _ []string) error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	// Full-screen commands own the terminal, so they only log to a file.
	var out io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		logFile = f
		out = f
	case !isInteractive(cmd):
		out = os.Stderr
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	dodge.SetConfigPath(flagConfig)
	dodge.SetDifficultyPreset(flagDifficulty)
	dodge.SetLogger(logger)
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == playCmd || cmd == menuCmd
}

// useStore makes games read and persist their records through store.
func useStore(store *storage.Store) {
	if store == nil {
		dodge.SetHighScoreSource(nil)
		return
	}
	dodge.SetHighScoreSource(func(gameID string) dodge.HighScoreStore {
		return storage.NewHighScoreKeeper(store, gameID)
	})
}

// openStore opens the scores database, logging and returning nil on failure
// so games still run without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// gameArg returns the game named on the command line, defaulting to the
// shape variant.
func gameArg(args []string) (string, error) {
	gameID := dodge.IDShapes
	if len(args) > 0 {
		gameID = args[0]
	}
	if _, ok := dodge.VariantOf(gameID); !ok {
		return "", fmt.Errorf("unknown game %q (run 'dodge list' to see available games)", gameID)
	}
	return gameID, nil
}
