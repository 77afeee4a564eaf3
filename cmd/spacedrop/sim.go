package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/games/spacedrop"
	"github.com/vovakirdan/space-drop/internal/platform/tui"
	"github.com/vovakirdan/space-drop/internal/storage"
)

var (
	flagSimRuns   int
	flagSimTicks  int
	flagSimMode   string
	flagSimSlack  float64
	flagSimRecord bool
	flagSimJSON   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot simulations",
	Long: `Fly a number of seeded runs with a simple autopilot at full speed and
report how far it gets. Useful for balancing a config or a preset.

The autopilot fires the thrusters while falling below the centre of the
next gap. Run i uses seed --seed + i, so a fixed --seed is reproducible.

Examples:
  spacedrop sim
  spacedrop sim --runs 100 --mode hard
  spacedrop sim --config ./tuned.yaml --seed 1 --json
  spacedrop sim --record    # store results under mode "sim"`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of runs")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 36000, "Maximum ticks per run")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "normal", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().Float64Var(&flagSimSlack, "slack", 10, "Autopilot tolerance below the gap centre")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Record runs in the database under mode \"sim\"")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print per-run results as JSON lines")
}

// simSummary aggregates simulation results.
type simSummary struct {
	Runs     int
	Survived int
	Best     int
	Total    int
	Ticks    int
	Causes   map[spacedrop.HitCause]int
}

func (s *simSummary) add(r spacedrop.SimResult) {
	s.Runs++
	s.Total += r.Score
	s.Ticks += r.Stats.Ticks
	s.Best = max(s.Best, r.Score)
	if r.Survived {
		s.Survived++
		return
	}
	s.Causes[r.Cause]++
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSimRuns <= 0 || flagSimTicks <= 0 {
		return fmt.Errorf("--runs and --ticks must be positive")
	}

	logger, err := newLogger(os.Stderr, "sim")
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagSimMode)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)

	var listeners []spacedrop.Listener
	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		listeners = append(listeners, store.Recorder(tui.SimMode, flagFPS, func(id string, err error) {
			if err != nil {
				logger.Error("cannot save run", "error", err)
				return
			}
			logger.Debug("run saved", "id", id)
		}))
	}

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	pilot := spacedrop.Autopilot{Slack: flagSimSlack}
	sum := simSummary{Causes: make(map[spacedrop.HitCause]int)}
	enc := json.NewEncoder(os.Stdout)
	start := time.Now()

	for i := 0; i < flagSimRuns; i++ {
		res := spacedrop.Simulate(cfg, base+int64(i), flagSimTicks, pilot, listeners...)
		sum.add(res)

		if flagSimJSON {
			if err := enc.Encode(res); err != nil {
				return err
			}
		}
		logger.Info("run finished",
			"run", i+1, "seed", res.Seed, "score", res.Score, "tier", res.Tier,
			"cause", res.Cause, "ticks", res.Stats.Ticks, "near_misses", res.Stats.NearMisses)
	}

	logger.Info("simulation complete",
		"mode", preset,
		"runs", sum.Runs,
		"best", sum.Best,
		"avg_score", float64(sum.Total)/float64(sum.Runs),
		"avg_ticks", sum.Ticks/sum.Runs,
		"survived", sum.Survived,
		"obstacle_hits", sum.Causes[spacedrop.HitObstacle],
		"boundary_hits", sum.Causes[spacedrop.HitBoundary],
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
