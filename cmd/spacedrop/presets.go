package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-drop/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long:  `Shows every difficulty preset with the curve it produces from the loaded config.`,
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func runPresets(_ *cobra.Command, _ []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Difficulty presets:")
	fmt.Println()
	fmt.Printf("  %-7s  %-9s  %-8s  %-8s  %-8s  %s\n", "ID", "Speed/pt", "Gap/pt", "Tightest", "Breather", "Description")
	fmt.Printf("  %-7s  %-9s  %-8s  %-8s  %-8s  %s\n", "--", "--------", "------", "--------", "--------", "-----------")

	for _, p := range config.Presets {
		cfg := base
		config.ApplyPreset(&cfg, p)

		breather := "off"
		if n := cfg.Difficulty.BreatherInterval; n > 0 {
			breather = fmt.Sprintf("every %d", n)
		}
		tightest := cfg.Obstacles.BaseGap - cfg.Difficulty.MaxGapTightening
		fmt.Printf("  %-7s  %-9.3f  %-8.2f  %-8.0f  %-8s  %s\n",
			p, cfg.Difficulty.VelocityGainPerPoint, cfg.Difficulty.GapTighteningPerPoint, tightest, breather, p.Description())
	}

	fmt.Println()
	fmt.Println("Run 'spacedrop play --mode <id>' to fly a preset.")
	return nil
}
