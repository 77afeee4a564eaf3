package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/platform/tui"
)

var (
	flagMode    string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly one difficulty preset",
	Long: `Start a Space Drop run directly.

Controls:
  Space/Up/W  - Fire thrusters (launches the craft from the title screen)
  P/Esc       - Pause / resume
  R/Enter     - Start, or restart after game over
  Ctrl+S      - Save a text screenshot to ~/.spacedrop/screenshots
  B           - Quit when not flying
  Q/Ctrl+C    - Quit

Difficulty presets:
  easy   - Gentle speed-up and a breather gap more often
  normal - The configured curve
  hard   - Faster ramp, fewer breathers
  fixed  - No progression: speed and gap stay at their base values

The terminal owns stdout while playing, so logs go to --log-file.

Examples:
  spacedrop play
  spacedrop play --mode hard
  spacedrop play --seed 42 --log-file /tmp/spacedrop.log
  spacedrop play --config ./my-spacedrop.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "normal", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagMode)
	if err != nil {
		return err
	}

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

	if err := tui.RunGame(cfg, preset, tui.GameOptions{
		Store:   store,
		Logger:  logger,
		Runtime: runtimeConfig(),
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// openLogFile opens path for appending. An empty path discards logs.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
