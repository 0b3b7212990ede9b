package session

import "github.com/vovakirdan/tui-pairs/internal/reward"

// Progression is the player's persistent state as the session sees it.
// Every call is a fire-and-forget request; the implementation owns its
// own consistency.
type Progression interface {
	PairValue() int
	BaseTime() int
	RecordGamePlayed(victory bool, pairsFound int)
	AddCurrency(amount int)
	MaxLevelCompleted() int
	SetMaxLevelCompleted(level int)
	RecordHintUsed()
	RecordRewardedWatched()
	GamesPlayed() int
	GamesSinceInterstitial() int
	RecordInterstitialShown()
}

// AdResult is the terminal outcome of a rewarded ad.
type AdResult int

const (
	AdFailed AdResult = iota
	AdEarned
)

// String returns a human-readable name for the result.
func (r AdResult) String() string {
	switch r {
	case AdEarned:
		return "Earned"
	case AdFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Ads is the ad network. ShowRewarded must eventually call done; it may do
// so synchronously, later from the host loop, or (by mistake) more than
// once. The session tolerates all three.
type Ads interface {
	RewardedAvailable() bool
	ShowRewarded(done func(AdResult))
	ShowInterstitial()
}

// Navigator receives the end-of-session menu choices.
type Navigator interface {
	Retry(level int)
	Advance(level int)
	Home()
}

// Hooks lets a front end react to session events. Calls are synchronous
// and must not call back into the session.
type Hooks interface {
	TileFlipStarted(pos int)
	TileMatched(a, b int)
	TileMismatched(a, b int)
	Reshuffled()
	HintFired(slots [4]int)
	Victory(b reward.Breakdown)
	Defeat(pairsFound int)
	TimeWarning()
}

// NopHooks ignores every event. Embed it to implement only some hooks.
type NopHooks struct{}

func (NopHooks) TileFlipStarted(int)      {}
func (NopHooks) TileMatched(int, int)     {}
func (NopHooks) TileMismatched(int, int)  {}
func (NopHooks) Reshuffled()              {}
func (NopHooks) HintFired([4]int)         {}
func (NopHooks) Victory(reward.Breakdown) {}
func (NopHooks) Defeat(int)               {}
func (NopHooks) TimeWarning()             {}

// noAds is used when no ad network is configured.
type noAds struct{}

func (noAds) RewardedAvailable() bool          { return false }
func (noAds) ShowRewarded(done func(AdResult)) { done(AdFailed) }
func (noAds) ShowInterstitial()                {}

// noNavigator is used when the host does not handle menu choices.
type noNavigator struct{}

func (noNavigator) Retry(int)   {}
func (noNavigator) Advance(int) {}
func (noNavigator) Home()       {}
