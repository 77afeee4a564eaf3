// spacedrop is a side-scrolling space flyer for the terminal.
//
// Usage:
//
//	spacedrop play            - Fly one difficulty preset
//	spacedrop menu            - Pick a preset or the scoreboard interactively
//	spacedrop scores [mode]   - Show the best runs for a mode
//	spacedrop presets         - List difficulty presets
//	spacedrop serve           - Start the SSH server (and optional HTTP feed)
//	spacedrop sim             - Run headless autopilot simulations
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 60)
//	--seed <value>       - RNG seed for reproducible obstacle layouts
//	--db <path>          - Runs database (default: ~/.spacedrop/runs.db)
//	--config <path>      - Game config YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/core"
	"github.com/vovakirdan/space-drop/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacedrop",
	Short: "Space Drop - fly a craft through obstacle gaps in your terminal",
	Long: `Space Drop is a side-scrolling flyer: keep the craft in the air with
thruster bursts and steer it through the gaps between obstacle pairs.
Each pair passed scores a point, close shaves score a bonus, and the
field speeds up and tightens as the score grows.

Available commands:
  play     - Fly one difficulty preset directly
  menu     - Interactive preset picker and scoreboard
  scores   - View the best runs
  presets  - List difficulty presets
  serve    - Start SSH server for remote play
  sim      - Run headless autopilot simulations

Examples:
  spacedrop play
  spacedrop play --mode hard
  spacedrop menu --fps 30
  spacedrop serve --ssh :2222 --http :8080
  spacedrop sim --runs 50 --mode fixed`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.spacedrop/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the game config from --config or the search path.
func loadConfig() (config.SpaceDropConfig, error) {
	return config.Load(flagConfig)
}

// openStore opens the runs database. A failure is logged and play continues
// without recording.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be recorded", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	return rc
}
