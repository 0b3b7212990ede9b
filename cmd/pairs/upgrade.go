package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/progress"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade pair|time",
	Short: "Buy a pair-value or base-time upgrade",
	Long: `Spend coins on the next level of an upgrade.

  pair - more coins for every pair found
  time - more seconds on the clock

Examples:
  pairs upgrade pair
  pairs upgrade time`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pair", "time"},
	RunE:      runUpgrade,
}

func runUpgrade(_ *cobra.Command, args []string) error {
	tuning, err := config.LoadTuning(flagTuning)
	if err != nil {
		return fmt.Errorf("cannot load tuning: %w", err)
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tracker, err := progress.Open(store, flagProfile, tuning.Economy, newLogger())
	if err != nil {
		return err
	}
	e := tuning.Economy

	switch args[0] {
	case "pair":
		err = tracker.UpgradePair()
	case "time":
		err = tracker.UpgradeTime()
	default:
		return fmt.Errorf("unknown upgrade %q, expected pair or time", args[0])
	}

	p := tracker.Profile()
	switch {
	case errors.Is(err, progress.ErrMaxLevel):
		fmt.Println("Already at the maximum level.")
		return nil
	case errors.Is(err, progress.ErrInsufficientFunds):
		cost := p.NextPairCost(e)
		if args[0] == "time" {
			cost = p.NextTimeCost(e)
		}
		return fmt.Errorf("not enough coins: have %d, need %d", p.Currency, cost)
	case err != nil:
		return err
	}

	fmt.Printf("Upgraded. Pair value %d, base time %ds, %d coins left.\n", p.PairValue(e), p.BaseTime(e), p.Currency)
	return nil
}
