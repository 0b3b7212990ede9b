// Package level resolves the per-level ruleset: grid size, time bonus,
// reward multiplier, board modifiers and the symbol pool.
package level

import (
	"errors"
	"fmt"
)

// DefaultShuffleInterval is the flips-per-reshuffle used by New.
const DefaultShuffleInterval = 4

// Clamp ranges applied by the resolver after overrides.
const (
	MinShuffleInterval = 2
	MaxShuffleInterval = 12
	MinMultiGridCount  = 1
	MaxMultiGridCount  = 3
)

var (
	// ErrLevel is returned for a non-positive level number.
	ErrLevel = errors.New("level must be positive")
	// ErrGridSize is returned for a non-positive or odd grid size.
	ErrGridSize = errors.New("grid size must be even and positive")
	// ErrPoolCount is returned when the pool cannot supply a single symbol.
	ErrPoolCount = errors.New("pool count must be positive")
)

// Tier is a difficulty band driving the default ruleset.
type Tier int

const (
	TierEasy Tier = iota
	TierNormal
	TierHard
)

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierNormal:
		return "Normal"
	case TierHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Config is the resolved ruleset of one level. It is built fresh per
// session and not mutated afterwards.
type Config struct {
	Level            int
	Tier             Tier
	GridSize         int     // Tiles per side; tile count is GridSize*GridSize
	TimeBonusSeconds int     // Added to the player's base time
	RewardMultiplier float64 // Applied to the victory subtotal
	ShuffleEnabled   bool
	ShuffleInterval  int  // Flips between reshuffles
	MultiGridEnabled bool // Reserved for multi-board variants
	MultiGridCount   int
	FadeEnabled      bool // Visual flag, passed through to front ends
	PoolCount        int  // Distinct symbols available to the board
}

// New returns a validated config with neutral modifiers.
func New(level, gridSize, poolCount int) (Config, error) {
	cfg := Config{
		Level:            level,
		Tier:             TierEasy,
		GridSize:         gridSize,
		RewardMultiplier: 1.0,
		ShuffleInterval:  DefaultShuffleInterval,
		MultiGridCount:   MinMultiGridCount,
		PoolCount:        poolCount,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configs a board cannot be built from.
func (c Config) Validate() error {
	if c.Level < 1 {
		return fmt.Errorf("level: %d: %w", c.Level, ErrLevel)
	}
	if c.GridSize <= 0 || c.GridSize%2 != 0 {
		return fmt.Errorf("level %d: grid size %d: %w", c.Level, c.GridSize, ErrGridSize)
	}
	if c.PoolCount < 1 {
		return fmt.Errorf("level %d: pool count %d: %w", c.Level, c.PoolCount, ErrPoolCount)
	}
	return nil
}

// TotalPairs returns the number of pairs on the board.
func (c Config) TotalPairs() int {
	return c.GridSize * c.GridSize / 2
}

// TotalTime returns the session countdown for the given base time.
func (c Config) TotalTime(baseTime int) int {
	return baseTime + c.TimeBonusSeconds
}

// Pool returns the symbol identifiers available to the board.
func (c Config) Pool() []int {
	pool := make([]int, c.PoolCount)
	for i := range pool {
		pool[i] = i
	}
	return pool
}
