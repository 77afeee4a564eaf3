package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-drop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty or the scoreboard interactively",
	Long: `Start Space Drop in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a preset.
Press B on the title or game over screen to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select preset
  Tab          - Scoreboard
  Q            - Quit

Examples:
  spacedrop menu
  spacedrop menu --fps 30
  spacedrop menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, closeLog, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	logger, err := newLogger(out, "spacedrop")
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunMenu(tui.SessionOptions{
		Config:  cfg,
		Runtime: runtimeConfig(),
		Store:   store,
		Logger:  logger,
	})
}
