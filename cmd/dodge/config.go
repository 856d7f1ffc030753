package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
)

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print the effective game config",
	Long: `Print the configuration a variant would run with, after applying
--config and --difficulty, as YAML. Redirect it to a file to start a
custom config:

  dodge config > ~/.arcade/configs/dodge.yaml
  dodge config dodge_classic --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

// loadGameConfig loads and validates the config a game would use.
func loadGameConfig(gameID string) (config.DodgeConfig, error) {
	variant, _ := dodge.VariantOf(gameID)

	cfg, err := config.Load(variant, flagConfig)
	if err != nil {
		return cfg, err
	}
	if preset, _ := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runConfig(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	cfg, err := loadGameConfig(gameID)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
