package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
	"github.com/vovakirdan/tui-dodge/internal/platform/tui"
	"github.com/vovakirdan/tui-dodge/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: dodge).

Controls:
  Left/A, Right/D  - Steer
  Down/S/Space     - Stop
  Mouse            - Hold left or right of the ship to steer
  Enter            - Start
  P                - Pause
  R                - Restart (after game over)
  Esc              - Back to the title screen
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Escalates every 20 seconds
  normal - Escalates every 15 seconds
  hard   - Starts three escalations in
  fixed  - Never escalates

Without --difficulty, Shape Dodge asks for a preset before starting.

Examples:
  dodge play
  dodge play dodge_classic
  dodge play --difficulty hard
  dodge play --config ./my-dodge.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()

	ok, err := chooseDifficulty(gameID, &cfg)
	if err != nil || !ok {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	// Continue without storage if it cannot be opened - game still works
	store := openStore()
	useStore(store)

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}

// chooseDifficulty shows the preset picker for escalating variants when no
// --difficulty was given. It returns false if the user backed out.
func chooseDifficulty(gameID string, cfg *core.RuntimeConfig) (bool, error) {
	if flagDifficulty != "" || gameID != dodge.IDShapes {
		return true, nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}

	preset, ok, err := tui.RunDifficultySelector(game.Title(), config.DifficultyNormal, *cfg)
	if err != nil || !ok {
		return false, err
	}

	logger.Debug("difficulty selected", "game", gameID, "preset", preset)
	dodge.SetDifficultyPreset(string(preset))
	return true, nil
}
