package config

import (
	_ "embed"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the hardcoded tuning table.
// It mirrors defaults/tuning.yaml and is used when the embedded copy
// cannot be parsed.
func DefaultTuning() Tuning {
	return Tuning{
		Levels: LevelsTuning{
			Total:     100,
			EasyEnd:   33,
			NormalEnd: 66,
		},
		Tiers: TiersTuning{
			Easy:   TierTuning{GridSize: 4, TimeBonusSeconds: 0, RewardMultiplier: 1.0},
			Normal: TierTuning{GridSize: 6, TimeBonusSeconds: 15, RewardMultiplier: 1.5},
			Hard:   TierTuning{GridSize: 8, TimeBonusSeconds: 30, RewardMultiplier: 2.0},
		},
		Pool: PoolTuning{
			Catalogue:   50,
			MinUnlocked: 8,
		},
		Session: SessionTuning{
			RevealDelay:      0.8,
			FlipTime:         0.3,
			WarningThreshold: 10,
			HintsPerSession:  3,
			HintMinGridSize:  6,
			HintDuration:     1.5,
			HintIntensity:    0.6,
			ExtraTimeSeconds: 15,
			DecoyAttempts:    40,
		},
		Economy: EconomyTuning{
			PairValues:       []int{1, 2, 4, 6, 8, 10, 12, 15, 18, 20},
			PairUpgradeCosts: []int{0, 50, 150, 300, 500, 800, 1200, 1800, 2500, 4000},
			TimeValues:       []int{30, 40, 50, 60, 75, 90, 120},
			TimeUpgradeCosts: []int{0, 100, 250, 500, 1000, 2000, 5000},
		},
		Ads: AdsTuning{
			InterstitialEvery: 5,
			InterstitialGrace: 3,
		},
		Modifier: ModifierTuning{
			ShuffleInterval:    4,
			NormalShuffleFrom:  45,
			HardMultiGridFrom:  78,
			HardFadeFrom:       89,
			HardTripleGridFrom: 96,
			MaxGridSize:        8,
		},
	}
}
