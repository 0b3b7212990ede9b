package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	flagLimit int
	flagBest  bool
	flagClear bool
	flagID    string
	flagLevel int
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show recent games and best rewards",
	Long: `Display the profile's most recent games, or the best reward per level.

Examples:
  pairs records
  pairs records --limit 50
  pairs records --best
  pairs records --level 12
  pairs records --id 5f0c...
  pairs records --clear`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	recordsCmd.Flags().BoolVar(&flagBest, "best", false, "Show the best reward per level")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the profile's game history")
	recordsCmd.Flags().StringVar(&flagID, "id", "", "Show one game by its session id")
	recordsCmd.Flags().IntVar(&flagLevel, "level", 0, "Show the best reward on one level")
}

func runRecords(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearHistory(flagProfile); err != nil {
			return err
		}
		fmt.Printf("History of %s cleared.\n", flagProfile)
		return nil
	}

	if flagID != "" {
		rec, err := store.SessionByID(flagID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no game with id %s", flagID)
		}
		fmt.Printf("Game %s\n\n", rec.SessionID)
		fmt.Printf("  Player     %s\n", rec.Profile)
		fmt.Printf("  Played     %s\n", rec.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("  Level      %d\n", rec.Level)
		fmt.Printf("  Result     %s\n", resultLabel(*rec))
		fmt.Printf("  Pairs      %d/%d\n", rec.PairsFound, rec.TotalPairs)
		fmt.Printf("  Reward     %d\n", rec.Reward)
		fmt.Printf("  Time left  %.1fs\n", rec.TimeLeft)
		return nil
	}

	if flagLevel > 0 {
		best, err := store.BestReward(flagProfile, flagLevel)
		if err != nil {
			return err
		}
		if best == 0 {
			fmt.Printf("%s has no reward on level %d yet.\n", flagProfile, flagLevel)
			return nil
		}
		fmt.Printf("Best reward of %s on level %d: %d\n", flagProfile, flagLevel, best)
		return nil
	}

	if flagBest {
		best, err := store.BestRewards(flagProfile)
		if err != nil {
			return err
		}
		fmt.Printf("Best rewards - %s\n\n", flagProfile)
		if len(best) == 0 {
			fmt.Println("No games recorded yet.")
			return nil
		}
		fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "Level", "Best", "Clears", "Attempts")
		fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "-----", "----", "------", "--------")
		for _, b := range best {
			fmt.Printf("  %-5d  %-6d  %-6d  %d\n", b.Level, b.BestReward, b.Clears, b.Attempts)
		}
		return nil
	}

	recent, err := store.RecentSessions(flagProfile, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent games - %s\n\n", flagProfile)
	if len(recent) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pairs play' to start!")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-7s  %-5s  %-6s  %s\n", "Date", "Level", "Result", "Pairs", "Reward", "Time left")
	fmt.Printf("  %-16s  %-5s  %-7s  %-5s  %-6s  %s\n", "----", "-----", "------", "-----", "------", "---------")
	for _, r := range recent {
		fmt.Printf("  %-16s  %-5d  %-7s  %-5s  %-6d  %.1fs\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Level, resultLabel(r),
			fmt.Sprintf("%d/%d", r.PairsFound, r.TotalPairs), r.Reward, r.TimeLeft)
	}
	return nil
}

func resultLabel(r storage.SessionRecord) string {
	result := "lost"
	if r.Victory {
		result = "won"
	}
	if r.Doubled {
		result += " x2"
	}
	return result
}
