package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/progress"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var flagAllProfiles bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagAllProfiles, "all", false, "List every saved profile")
}

func runStats(_ *cobra.Command, _ []string) error {
	tuning, err := config.LoadTuning(flagTuning)
	if err != nil {
		return fmt.Errorf("cannot load tuning: %w", err)
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagAllProfiles {
		return listProfiles(store, tuning.Levels.Total)
	}

	tracker, err := progress.Open(store, flagProfile, tuning.Economy, newLogger())
	if err != nil {
		return err
	}
	p := tracker.Profile()
	e := tuning.Economy

	history, err := store.Stats(flagProfile)
	if err != nil {
		return err
	}

	fmt.Printf("Profile %s\n\n", p.Name)
	fmt.Printf("  Coins              %d (lifetime %d)\n", p.Currency, p.LifetimeEarned)
	fmt.Printf("  Pair value         %d (level %d/%d)\n", p.PairValue(e), p.PairLevel, e.MaxPairLevel())
	fmt.Printf("  Base time          %ds (level %d/%d)\n", p.BaseTime(e), p.TimeLevel, e.MaxTimeLevel())
	fmt.Printf("  Levels cleared     %d of %d\n", p.MaxLevelCompleted, tuning.Levels.Total)
	fmt.Printf("  Games              %d (%d won, %d lost, %.0f%%)\n", p.GamesPlayed, p.Victories, p.Defeats, p.WinRate()*100)
	fmt.Printf("  Win streak         %d (best %d)\n", p.WinStreak, p.BestStreak)
	fmt.Printf("  Pairs found        %d\n", p.PairsFound)
	fmt.Printf("  Hints used         %d\n", p.HintsUsed)
	fmt.Printf("  Rewarded ads       %d\n", p.RewardedWatched)
	if history.Sessions > 0 {
		fmt.Printf("  Best reward        %d (avg %.1f)\n", history.BestReward, history.AvgReward)
		fmt.Printf("  Last played        %s\n", history.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func listProfiles(store *storage.Store, totalLevels int) error {
	names, err := store.Profiles()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No profiles saved yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-7s  %-6s  %s\n", "Profile", "Cleared", "Coins", "Games")
	fmt.Printf("  %-16s  %-7s  %-6s  %s\n", "-------", "-------", "-----", "-----")
	for _, name := range names {
		p, ok, err := store.LoadProfile(name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %-7s  %-6d  %d\n", name,
			fmt.Sprintf("%d/%d", p.MaxLevelCompleted, totalLevels), p.Currency, p.GamesPlayed)
	}
	return nil
}
