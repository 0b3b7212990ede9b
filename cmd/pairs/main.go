// pairs is a timed match-pairs memory game for the terminal.
//
// Usage:
//
//	pairs                     - Open the home menu
//	pairs play [level]        - Play a level directly
//	pairs levels              - List levels and their rules
//	pairs records             - Show recent games and best rewards
//	pairs stats               - Show profile statistics
//	pairs upgrade pair|time   - Buy an upgrade
//	pairs serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible boards
//	--db <path>        - Set database path (default: ~/.pairs/pairs.db)
//	--tuning <path>    - Custom tuning YAML
//	--levels <path>    - Custom level override YAML
//	--profile <name>   - Profile to play as (default: $USER)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/level"
	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagTuning  string
	flagLevels  string
	flagProfile string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Pairs - a timed memory game in your terminal",
	Long: `Pairs is a match-pairs memory game. Flip two tiles at a time and
clear the board before the clock runs out. Earn coins, buy upgrades and
work through 100 levels of growing grids, reshuffles and fading tiles.

Available commands:
  play     - Play a level directly
  levels   - List levels and their rules
  records  - Recent games and best rewards
  stats    - Profile statistics
  upgrade  - Buy a pair-value or base-time upgrade
  serve    - Start SSH server for remote play

Examples:
  pairs
  pairs play 12
  pairs levels --tier hard
  pairs upgrade pair
  pairs serve --ssh :2222`,
	RunE: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pairs/pairs.db", "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagTuning, "tuning", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to level override YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", defaultProfile(), "Profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file while playing")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(serveCmd)
}

func defaultProfile() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pairs",
		Level:           log.WarnLevel,
	})
}

// loadEnv reads tuning and level overrides and opens the database. A
// database that cannot be opened is reported and play continues without it.
func loadEnv(logger *log.Logger) (*tui.Env, error) {
	tuning, err := config.LoadTuning(flagTuning)
	if err != nil {
		return nil, fmt.Errorf("cannot load tuning: %w", err)
	}

	overrides := level.FindOverrides(flagLevels, tuning.Levels.Total, tuning.Modifier.MaxGridSize, logger)
	resolver := level.NewResolver(tuning, overrides, logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "error", err)
		store = nil
	}

	return tui.NewEnv(tuning, resolver, store, logger), nil
}

// openStore opens the database for commands that only read or edit it.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return store, nil
}
