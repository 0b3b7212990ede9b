// Package progress keeps the player's profile: currency, upgrades, level
// progress and statistics. The Tracker adapts a profile to the session's
// Progression contract and persists every change.
package progress

import (
	"errors"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	// ErrMaxLevel is returned when an upgrade is already at its top level.
	ErrMaxLevel = errors.New("progress: upgrade already at max level")
	// ErrInsufficientFunds is returned when the player cannot afford an upgrade.
	ErrInsufficientFunds = errors.New("progress: not enough currency")
)

// Profile is the persistent player state.
type Profile struct {
	Name                   string
	Currency               int
	LifetimeEarned         int
	PairLevel              int // index into the pair-value table
	TimeLevel              int // index into the base-time table
	CurrentLevel           int
	MaxLevelCompleted      int
	GamesPlayed            int
	Victories              int
	Defeats                int
	PairsFound             int
	WinStreak              int
	BestStreak             int
	HintsUsed              int
	RewardedWatched        int
	GamesSinceInterstitial int
}

// NewProfile returns a fresh profile starting at level 1.
func NewProfile(name string) Profile {
	return Profile{Name: name, CurrentLevel: 1}
}

// PairValue returns the currency earned per pair.
func (p Profile) PairValue(e config.EconomyTuning) int {
	return e.PairValues[clampIndex(p.PairLevel, len(e.PairValues))]
}

// BaseTime returns the base countdown in seconds.
func (p Profile) BaseTime(e config.EconomyTuning) int {
	return e.TimeValues[clampIndex(p.TimeLevel, len(e.TimeValues))]
}

// NextPairCost returns the price of the next pair-value upgrade, or -1 at max.
func (p Profile) NextPairCost(e config.EconomyTuning) int {
	if p.PairLevel >= e.MaxPairLevel() {
		return -1
	}
	return e.PairUpgradeCosts[p.PairLevel+1]
}

// NextTimeCost returns the price of the next base-time upgrade, or -1 at max.
func (p Profile) NextTimeCost(e config.EconomyTuning) int {
	if p.TimeLevel >= e.MaxTimeLevel() {
		return -1
	}
	return e.TimeUpgradeCosts[p.TimeLevel+1]
}

// CanUpgradePair reports whether the next pair-value upgrade is affordable.
func (p Profile) CanUpgradePair(e config.EconomyTuning) bool {
	cost := p.NextPairCost(e)
	return cost >= 0 && p.Currency >= cost
}

// CanUpgradeTime reports whether the next base-time upgrade is affordable.
func (p Profile) CanUpgradeTime(e config.EconomyTuning) bool {
	cost := p.NextTimeCost(e)
	return cost >= 0 && p.Currency >= cost
}

// UpgradePair buys the next pair-value level.
func (p *Profile) UpgradePair(e config.EconomyTuning) error {
	cost := p.NextPairCost(e)
	if cost < 0 {
		return ErrMaxLevel
	}
	if p.Currency < cost {
		return ErrInsufficientFunds
	}
	p.Currency -= cost
	p.PairLevel++
	return nil
}

// UpgradeTime buys the next base-time level.
func (p *Profile) UpgradeTime(e config.EconomyTuning) error {
	cost := p.NextTimeCost(e)
	if cost < 0 {
		return ErrMaxLevel
	}
	if p.Currency < cost {
		return ErrInsufficientFunds
	}
	p.Currency -= cost
	p.TimeLevel++
	return nil
}

// AddCurrency credits (or, for negative amounts, debits) the balance.
// Only credits count towards the lifetime total.
func (p *Profile) AddCurrency(amount int) {
	p.Currency += amount
	if p.Currency < 0 {
		p.Currency = 0
	}
	if amount > 0 {
		p.LifetimeEarned += amount
	}
}

// RecordGame updates the counters after a session ends.
func (p *Profile) RecordGame(victory bool, pairsFound int) {
	p.GamesPlayed++
	p.GamesSinceInterstitial++
	p.PairsFound += max(0, pairsFound)
	if victory {
		p.Victories++
		p.WinStreak++
		p.BestStreak = max(p.BestStreak, p.WinStreak)
		return
	}
	p.Defeats++
	p.WinStreak = 0
}

// WinRate returns victories per game played, 0 before the first game.
func (p Profile) WinRate() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.Victories) / float64(p.GamesPlayed)
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// record converts to the storage row.
func (p Profile) record() storage.ProfileRecord {
	return storage.ProfileRecord{
		Name:                   p.Name,
		Currency:               p.Currency,
		LifetimeEarned:         p.LifetimeEarned,
		PairLevel:              p.PairLevel,
		TimeLevel:              p.TimeLevel,
		CurrentLevel:           p.CurrentLevel,
		MaxLevelCompleted:      p.MaxLevelCompleted,
		GamesPlayed:            p.GamesPlayed,
		Victories:              p.Victories,
		Defeats:                p.Defeats,
		PairsFound:             p.PairsFound,
		WinStreak:              p.WinStreak,
		BestStreak:             p.BestStreak,
		HintsUsed:              p.HintsUsed,
		RewardedWatched:        p.RewardedWatched,
		GamesSinceInterstitial: p.GamesSinceInterstitial,
	}
}

func profileFromRecord(r storage.ProfileRecord) Profile {
	return Profile{
		Name:                   r.Name,
		Currency:               r.Currency,
		LifetimeEarned:         r.LifetimeEarned,
		PairLevel:              r.PairLevel,
		TimeLevel:              r.TimeLevel,
		CurrentLevel:           max(1, r.CurrentLevel),
		MaxLevelCompleted:      r.MaxLevelCompleted,
		GamesPlayed:            r.GamesPlayed,
		Victories:              r.Victories,
		Defeats:                r.Defeats,
		PairsFound:             r.PairsFound,
		WinStreak:              r.WinStreak,
		BestStreak:             r.BestStreak,
		HintsUsed:              r.HintsUsed,
		RewardedWatched:        r.RewardedWatched,
		GamesSinceInterstitial: r.GamesSinceInterstitial,
	}
}
