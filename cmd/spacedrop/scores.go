package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/platform/tui"
	"github.com/vovakirdan/space-drop/internal/storage"
)

var (
	flagLimit       int
	flagClear       bool
	flagJSON        bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs for a mode",
	Long: `Display the best recorded runs for a difficulty preset, or for
headless simulations with mode "sim". The mode defaults to normal.

Examples:
  spacedrop scores
  spacedrop scores hard --limit 20
  spacedrop scores sim --json
  spacedrop scores --tui
  spacedrop scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs for the mode")
	scoresCmd.Flags().BoolVar(&flagJSON, "json", false, "Print runs and stats as JSON")
	scoresCmd.Flags().BoolVar(&flagInteractive, "tui", false, "Open the interactive scoreboard")
}

// parseMode accepts a preset name or the simulation mode.
func parseMode(s string) (string, error) {
	if s == tui.SimMode {
		return s, nil
	}
	p, err := config.ParsePreset(s)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

func runScores(_ *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	mode, err := parseMode(arg)
	if err != nil {
		return err
	}
	if flagLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", flagLimit)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagInteractive {
		rc := runtimeConfig()
		return tui.RunScoreboard(store, mode, rc.ScreenW, rc.ScreenH)
	}

	if flagClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s runs.\n", mode)
		return nil
	}

	runs, err := store.TopRuns(mode, flagLimit)
	if err != nil {
		return err
	}
	stats, err := store.Stats(mode)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Stats *storage.Stats      `json:"stats"`
			Runs  []storage.RunRecord `json:"runs"`
		}{stats, runs})
	}

	printScores(os.Stdout, mode, runs, *stats)
	return nil
}

func printScores(w io.Writer, mode string, runs []storage.RunRecord, stats storage.Stats) {
	fmt.Fprintf(w, "Space Drop - best %s runs\n\n", mode)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'spacedrop play --mode %s' to set the first high score!\n", mode)
		return
	}

	fmt.Fprintf(w, "  %-4s  %-6s  %-10s  %-6s  %-8s  %s\n", "Rank", "Score", "Tier", "Time", "Distance", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-10s  %-6s  %-8s  %s\n", "----", "-----", "----", "----", "--------", "----")

	for i, r := range runs {
		secs := int(r.Duration.Seconds())
		fmt.Fprintf(w, "  %-4d  %-6d  %-10s  %2d:%02d   %-8.0f  %s\n",
			i+1, r.Score, r.Tier, secs/60, secs%60, r.Distance, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d  |  Runs: %d  |  Average: %.1f  |  Near misses: %d\n",
		stats.BestScore, stats.GamesPlayed, stats.AvgScore, stats.TotalNearMisses)
}
