// Package config provides the YAML-based tuning table for the pairs engine.
//
// The tuning table replaces hardcoded global constants: it is loaded once at
// startup, validated, and then passed by value to the level resolver, the
// session and the progression store.
package config

import (
	"errors"
	"fmt"
)

// Tuning contains every balancing number of the game.
type Tuning struct {
	Levels   LevelsTuning   `yaml:"levels"`
	Tiers    TiersTuning    `yaml:"tiers"`
	Pool     PoolTuning     `yaml:"pool"`
	Session  SessionTuning  `yaml:"session"`
	Economy  EconomyTuning  `yaml:"economy"`
	Ads      AdsTuning      `yaml:"ads"`
	Modifier ModifierTuning `yaml:"modifiers"`
}

// LevelsTuning defines the level range and tier thresholds.
type LevelsTuning struct {
	Total     int `yaml:"total"`      // Number of levels (valid range 1..Total)
	EasyEnd   int `yaml:"easy_end"`   // Last level of the easy tier
	NormalEnd int `yaml:"normal_end"` // Last level of the normal tier
}

// TiersTuning holds the defaults fixed by each tier.
type TiersTuning struct {
	Easy   TierTuning `yaml:"easy"`
	Normal TierTuning `yaml:"normal"`
	Hard   TierTuning `yaml:"hard"`
}

// TierTuning is the per-tier default ruleset.
type TierTuning struct {
	GridSize         int     `yaml:"grid_size"`
	TimeBonusSeconds int     `yaml:"time_bonus_seconds"`
	RewardMultiplier float64 `yaml:"reward_multiplier"`
}

// ModifierTuning defines when board modifiers switch on.
type ModifierTuning struct {
	ShuffleInterval    int `yaml:"shuffle_interval"`      // Tiles flipped per reshuffle
	NormalShuffleFrom  int `yaml:"normal_shuffle_from"`   // Normal tier enables shuffle from this level
	HardMultiGridFrom  int `yaml:"hard_multi_grid_from"`  // Hard tier enables multi-grid (count 2)
	HardFadeFrom       int `yaml:"hard_fade_from"`        // Hard tier enables fade
	HardTripleGridFrom int `yaml:"hard_triple_grid_from"` // Hard tier steps multi-grid count to 3
	MaxGridSize        int `yaml:"max_grid_size"`         // Largest grid an override may request
}

// PoolTuning defines the symbol catalogue.
type PoolTuning struct {
	Catalogue   int `yaml:"catalogue"`    // Total distinct symbols available
	MinUnlocked int `yaml:"min_unlocked"` // Symbols unlocked at level 0
}

// SessionTuning holds timing and hint parameters.
type SessionTuning struct {
	RevealDelay      float64 `yaml:"reveal_delay"`       // Seconds a selected pair stays visible
	FlipTime         float64 `yaml:"flip_time"`          // Seconds for a flip transition
	WarningThreshold float64 `yaml:"warning_threshold"`  // Seconds left when the time warning fires
	HintsPerSession  int     `yaml:"hints_per_session"`  // Hint budget
	HintMinGridSize  int     `yaml:"hint_min_grid_size"` // Hints are only offered from this grid size
	HintDuration     float64 `yaml:"hint_duration"`      // Highlight seconds (presentation)
	HintIntensity    float64 `yaml:"hint_intensity"`     // Highlight strength 0..1 (presentation)
	ExtraTimeSeconds int     `yaml:"extra_time_seconds"` // Seconds granted by the extra-time ad
	DecoyAttempts    int     `yaml:"decoy_attempts"`     // Bounded retries when picking decoys
}

// EconomyTuning holds the upgrade tables.
type EconomyTuning struct {
	PairValues       []int `yaml:"pair_values"`        // Currency per pair by upgrade level
	PairUpgradeCosts []int `yaml:"pair_upgrade_costs"` // Cost to reach each pair level
	TimeValues       []int `yaml:"time_values"`        // Base seconds by upgrade level
	TimeUpgradeCosts []int `yaml:"time_upgrade_costs"` // Cost to reach each time level
}

// AdsTuning controls interstitial cadence.
type AdsTuning struct {
	InterstitialEvery int `yaml:"interstitial_every"` // Games between interstitials
	InterstitialGrace int `yaml:"interstitial_grace"` // Games played before the first one
}

// MaxPairLevel returns the highest pair-value upgrade level.
func (e EconomyTuning) MaxPairLevel() int {
	return len(e.PairValues) - 1
}

// MaxTimeLevel returns the highest base-time upgrade level.
func (e EconomyTuning) MaxTimeLevel() int {
	return len(e.TimeValues) - 1
}

// Validate reports tables that would make the resolver or the store misbehave.
func (t Tuning) Validate() error {
	var errs []error

	if t.Levels.Total < 1 {
		errs = append(errs, fmt.Errorf("levels.total must be positive, got %d", t.Levels.Total))
	}
	if t.Levels.EasyEnd < 1 || t.Levels.EasyEnd >= t.Levels.NormalEnd || t.Levels.NormalEnd > t.Levels.Total {
		errs = append(errs, fmt.Errorf("tier thresholds must satisfy 1 <= easy_end < normal_end <= total, got %d/%d/%d",
			t.Levels.EasyEnd, t.Levels.NormalEnd, t.Levels.Total))
	}

	for name, tier := range map[string]TierTuning{"easy": t.Tiers.Easy, "normal": t.Tiers.Normal, "hard": t.Tiers.Hard} {
		if tier.GridSize <= 0 || tier.GridSize%2 != 0 {
			errs = append(errs, fmt.Errorf("tiers.%s.grid_size must be even and positive, got %d", name, tier.GridSize))
		}
		if tier.GridSize > t.Modifier.MaxGridSize {
			errs = append(errs, fmt.Errorf("tiers.%s.grid_size exceeds modifiers.max_grid_size", name))
		}
	}

	maxPairs := t.Modifier.MaxGridSize * t.Modifier.MaxGridSize / 2
	if t.Pool.Catalogue < maxPairs {
		errs = append(errs, fmt.Errorf("pool.catalogue (%d) must cover the largest grid (%d pairs)", t.Pool.Catalogue, maxPairs))
	}
	if t.Pool.MinUnlocked < 1 || t.Pool.MinUnlocked > t.Pool.Catalogue {
		errs = append(errs, fmt.Errorf("pool.min_unlocked must be within 1..catalogue, got %d", t.Pool.MinUnlocked))
	}

	if len(t.Economy.PairValues) == 0 || len(t.Economy.PairValues) != len(t.Economy.PairUpgradeCosts) {
		errs = append(errs, errors.New("economy.pair_values and pair_upgrade_costs must be non-empty and the same length"))
	}
	if len(t.Economy.TimeValues) == 0 || len(t.Economy.TimeValues) != len(t.Economy.TimeUpgradeCosts) {
		errs = append(errs, errors.New("economy.time_values and time_upgrade_costs must be non-empty and the same length"))
	}

	if t.Session.RevealDelay <= 0 || t.Session.FlipTime <= 0 {
		errs = append(errs, errors.New("session.reveal_delay and session.flip_time must be positive"))
	}
	if t.Session.HintsPerSession < 0 {
		errs = append(errs, errors.New("session.hints_per_session must not be negative"))
	}
	if t.Ads.InterstitialEvery < 1 {
		errs = append(errs, errors.New("ads.interstitial_every must be positive"))
	}

	return errors.Join(errs...)
}
