package ads

import (
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/level"
)

type memProgress struct {
	currency, maxLevel, played int
}

func (p *memProgress) PairValue() int                 { return 1 }
func (p *memProgress) BaseTime() int                  { return 30 }
func (p *memProgress) RecordGamePlayed(bool, int)     { p.played++ }
func (p *memProgress) AddCurrency(n int)              { p.currency += n }
func (p *memProgress) MaxLevelCompleted() int         { return p.maxLevel }
func (p *memProgress) SetMaxLevelCompleted(level int) { p.maxLevel = level }
func (p *memProgress) RecordHintUsed()                {}
func (p *memProgress) RecordRewardedWatched()         {}
func (p *memProgress) GamesPlayed() int               { return p.played }
func (p *memProgress) GamesSinceInterstitial() int    { return 0 }
func (p *memProgress) RecordInterstitialShown()       {}

func mustLevel(t *testing.T) level.Config {
	t.Helper()
	cfg, err := level.New(1, 4, 8)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}
