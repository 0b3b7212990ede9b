// Package reward turns a session outcome into a currency amount.
// Every function is pure.
package reward

import (
	"math"

	"github.com/shopspring/decimal"
)

// Breakdown is the itemised victory payout.
type Breakdown struct {
	PairsFound      int
	PairValue       int
	PairsReward     int     // PairsFound * PairValue
	TimeBonus       int     // Half a coin per second left, rounded down
	Subtotal        int     // PairsReward + TimeBonus
	Multiplier      float64 // Level multiplier, never below 1
	MultiplierBonus int     // Extra coins from the multiplier
	Total           int
}

// TimeBonus returns floor(secondsRemaining / 2), or 0 when no time is left.
func TimeBonus(secondsRemaining float64) int {
	if !(secondsRemaining > 0) {
		return 0
	}
	return int(math.Floor(secondsRemaining / 2))
}

// RunningTotal is the in-play reward shown before any bonus applies.
func RunningTotal(pairValue, pairsFound int) int {
	return max(0, pairsFound) * pairValue
}

// VictoryReward computes the payout of a cleared board.
//
// The multiplied subtotal is floored with decimal arithmetic, so a
// multiplier such as 1.1 applied to 10 yields exactly 11.
func VictoryReward(pairValue, pairsFound int, secondsRemaining, multiplier float64) Breakdown {
	b := Breakdown{
		PairsFound: max(0, pairsFound),
		PairValue:  pairValue,
	}
	b.PairsReward = b.PairsFound * pairValue
	b.TimeBonus = TimeBonus(secondsRemaining)
	b.Subtotal = b.PairsReward + b.TimeBonus

	if !(multiplier >= 1) {
		multiplier = 1
	}
	b.Multiplier = multiplier

	multiplied := decimal.NewFromInt(int64(b.Subtotal)).
		Mul(decimal.NewFromFloat(multiplier)).
		Floor().
		IntPart()
	b.MultiplierBonus = int(multiplied) - b.Subtotal
	b.Total = max(0, b.Subtotal+b.MultiplierBonus)
	return b
}

// DoubledExtra is the additional amount granted when a victory reward is
// doubled: the already granted total again, or 0 for nothing granted.
func DoubledExtra(total int) int {
	if total <= 0 {
		return 0
	}
	return total
}

// DoubledTotal is the grand total after doubling.
func (b Breakdown) DoubledTotal() int {
	return b.Total + DoubledExtra(b.Total)
}
