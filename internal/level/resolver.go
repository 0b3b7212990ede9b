package level

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
)

// Resolver computes level configs from the tuning table and an optional
// override source. It never fails: bad data degrades to defaults.
type Resolver struct {
	tuning    config.Tuning
	overrides OverrideSource
	logger    *log.Logger
}

// NewResolver creates a resolver. overrides and logger may be nil.
func NewResolver(tuning config.Tuning, overrides OverrideSource, logger *log.Logger) *Resolver {
	if overrides == nil {
		overrides = StaticOverrides{}
	}
	return &Resolver{
		tuning:    tuning,
		overrides: overrides,
		logger:    orDiscard(logger),
	}
}

// TotalLevels returns the number of playable levels.
func (r *Resolver) TotalLevels() int {
	return r.tuning.Levels.Total
}

// Valid reports whether level is inside the playable range.
func (r *Resolver) Valid(level int) bool {
	return level >= 1 && level <= r.tuning.Levels.Total
}

// Tier returns the difficulty band of a level.
func (r *Resolver) Tier(level int) Tier {
	switch {
	case level <= r.tuning.Levels.EasyEnd:
		return TierEasy
	case level <= r.tuning.Levels.NormalEnd:
		return TierNormal
	default:
		return TierHard
	}
}

// Resolve returns the config for levelNumber. Out-of-range levels resolve
// as level 1.
func (r *Resolver) Resolve(levelNumber int) Config {
	level := levelNumber
	if !r.Valid(level) {
		level = 1
	}

	cfg := r.defaults(level)

	if ov, ok := r.overrides.Override(level); ok {
		if err := ov.check(r.tuning.Levels.Total, r.tuning.Modifier.MaxGridSize); err != nil {
			r.logger.Warn("override ignored", "level", level, "error", err)
		} else {
			ov.apply(&cfg)
		}
	}

	r.clamp(&cfg)
	return cfg
}

// All resolves every playable level in order.
func (r *Resolver) All() []Config {
	out := make([]Config, 0, r.tuning.Levels.Total)
	for lvl := 1; lvl <= r.tuning.Levels.Total; lvl++ {
		out = append(out, r.Resolve(lvl))
	}
	return out
}

// defaults builds the tier ruleset for a valid level.
func (r *Resolver) defaults(level int) Config {
	mods := r.tuning.Modifier
	tier := r.Tier(level)

	cfg := Config{
		Level:           level,
		Tier:            tier,
		ShuffleInterval: mods.ShuffleInterval,
		MultiGridCount:  MinMultiGridCount,
	}

	var tt config.TierTuning
	switch tier {
	case TierEasy:
		tt = r.tuning.Tiers.Easy
	case TierNormal:
		tt = r.tuning.Tiers.Normal
		cfg.ShuffleEnabled = level >= mods.NormalShuffleFrom
	case TierHard:
		tt = r.tuning.Tiers.Hard
		cfg.ShuffleEnabled = true
		if level >= mods.HardMultiGridFrom {
			cfg.MultiGridEnabled = true
			cfg.MultiGridCount = 2
		}
		if level >= mods.HardTripleGridFrom {
			cfg.MultiGridCount = 3
		}
		cfg.FadeEnabled = level >= mods.HardFadeFrom
	}
	cfg.GridSize = tt.GridSize
	cfg.TimeBonusSeconds = tt.TimeBonusSeconds
	cfg.RewardMultiplier = tt.RewardMultiplier

	pool := r.tuning.Pool
	progressive := pool.MinUnlocked + level*(pool.Catalogue-pool.MinUnlocked)/r.tuning.Levels.Total
	cfg.PoolCount = max(cfg.TotalPairs(), min(pool.Catalogue, progressive))

	return cfg
}

// clamp is the final safety pass over defaults and overrides alike.
func (r *Resolver) clamp(cfg *Config) {
	cfg.PoolCount = core.Clamp(cfg.PoolCount, cfg.TotalPairs(), max(cfg.TotalPairs(), r.tuning.Pool.Catalogue))
	cfg.ShuffleInterval = core.Clamp(cfg.ShuffleInterval, MinShuffleInterval, MaxShuffleInterval)
	cfg.MultiGridCount = core.Clamp(cfg.MultiGridCount, MinMultiGridCount, MaxMultiGridCount)
	cfg.TimeBonusSeconds = max(0, cfg.TimeBonusSeconds)
	if !(cfg.RewardMultiplier >= 1.0) { // also catches NaN
		cfg.RewardMultiplier = 1.0
	}
}
