package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
)

var (
	flagMono   bool
	flagAdFill int
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. Without a level, continues from the profile's current level.

Controls:
  Arrows/WASD - Move the cursor
  Space/Enter - Flip the tile under the cursor
  H           - Hint (grids of 6x6 and larger)
  P/Esc       - Pause
  X           - Watch an ad to double a victory reward
  T           - Watch an ad for extra time after a defeat
  N / R / B   - Next level / Retry / Back to menu
  Q/Ctrl+C    - Quit

Examples:
  pairs play
  pairs play 3
  pairs play 1 --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().BoolVar(&flagMono, "mono", false, "Use the monochrome theme")
		c.Flags().IntVar(&flagAdFill, "ad-fill", 90, "Percentage of simulated rewarded ads that pay out")
	}
}

// prepare builds the environment, player and terminal config for local play.
func prepare() (*tui.Env, *tui.Player, core.RuntimeConfig, error) {
	logger := newLogger()
	env, err := loadEnv(logger)
	if err != nil {
		return nil, nil, core.RuntimeConfig{}, err
	}

	// Logs would draw over the alternate screen.
	env.Logger = log.New(io.Discard)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, core.RuntimeConfig{}, fmt.Errorf("cannot open log file: %w", err)
		}
		env.Logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "pairs", Level: log.DebugLevel})
	}
	if flagMono {
		env.Theme = tui.MonochromeTheme()
	}
	env.AdFill = flagAdFill

	player, err := env.NewPlayer(flagProfile)
	if err != nil {
		return nil, nil, core.RuntimeConfig{}, fmt.Errorf("cannot load profile %q: %w", flagProfile, err)
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	return env, player, cfg, nil
}

func runMenu(_ *cobra.Command, _ []string) error {
	env, player, cfg, err := prepare()
	if err != nil {
		return err
	}
	if env.Store != nil {
		defer env.Store.Close()
	}
	return tui.Run(env, player, cfg)
}

func runPlay(_ *cobra.Command, args []string) error {
	env, player, cfg, err := prepare()
	if err != nil {
		return err
	}
	if env.Store != nil {
		defer env.Store.Close()
	}

	lvl := player.Tracker.Profile().CurrentLevel
	if len(args) == 1 {
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil || !env.Resolver.Valid(n) {
			return fmt.Errorf("level must be a number between 1 and %d", env.Resolver.TotalLevels())
		}
		if unlocked := player.Tracker.Profile().MaxLevelCompleted + 1; n > unlocked {
			return fmt.Errorf("level %d is locked, clear level %d first", n, unlocked)
		}
		lvl = n
	}
	if !env.Resolver.Valid(lvl) {
		lvl = env.Resolver.TotalLevels()
	}

	return tui.RunLevel(env, player, cfg, lvl)
}
