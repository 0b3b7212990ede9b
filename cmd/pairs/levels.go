package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/level"
)

var flagTier string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and their rules",
	Long: `Shows the resolved ruleset of every level, after level overrides.

Examples:
  pairs levels
  pairs levels --tier hard
  pairs levels --levels ./my-levels.yaml`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagTier, "tier", "", "Only show one tier: easy, normal, hard")
}

func runLevels(_ *cobra.Command, _ []string) error {
	env, err := loadEnv(newLogger())
	if err != nil {
		return err
	}
	if env.Store != nil {
		defer env.Store.Close()
	}

	fmt.Printf("  %-5s  %-6s  %-5s  %-5s  %-5s  %-4s  %s\n", "Level", "Tier", "Grid", "Bonus", "Mult", "Pool", "Modifiers")
	fmt.Printf("  %-5s  %-6s  %-5s  %-5s  %-5s  %-4s  %s\n", "-----", "----", "----", "-----", "----", "----", "---------")

	for _, cfg := range env.Resolver.All() {
		if flagTier != "" && !strings.EqualFold(cfg.Tier.String(), flagTier) {
			continue
		}
		fmt.Printf("  %-5d  %-6s  %-5s  %-5s  %-5s  %-4d  %s\n",
			cfg.Level, cfg.Tier,
			fmt.Sprintf("%dx%d", cfg.GridSize, cfg.GridSize),
			fmt.Sprintf("+%ds", cfg.TimeBonusSeconds),
			fmt.Sprintf("x%.1f", cfg.RewardMultiplier),
			cfg.PoolCount,
			modifiers(cfg),
		)
	}
	return nil
}

func modifiers(cfg level.Config) string {
	var mods []string
	if cfg.ShuffleEnabled {
		mods = append(mods, fmt.Sprintf("shuffle every %d", cfg.ShuffleInterval))
	}
	if cfg.MultiGridEnabled {
		mods = append(mods, fmt.Sprintf("%d grids", cfg.MultiGridCount))
	}
	if cfg.FadeEnabled {
		mods = append(mods, "fade")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ", ")
}
