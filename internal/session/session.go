package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pairs/internal/board"
	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/level"
	"github.com/vovakirdan/tui-pairs/internal/reward"
)

// ErrNoProgression is returned by New when no progression store is given.
var ErrNoProgression = errors.New("session: progression is required")

// Options configures a new session. Only Config and Progression are
// required; a zero Tuning means config.DefaultTuning.
type Options struct {
	Config      level.Config
	Tuning      config.Tuning
	Progression Progression
	Ads         Ads
	Navigator   Navigator
	Hooks       Hooks
	Source      board.Source
	Logger      *log.Logger
}

// Session is one attempt at a level. It is not safe for concurrent use.
type Session struct {
	id     string
	cfg    level.Config
	tuning config.SessionTuning

	board    *board.Board
	progress Progression
	ads      Ads
	nav      Navigator
	hooks    Hooks
	logger   *log.Logger

	state       State
	resumeState State // state to return to from Paused

	timeLeft float64
	maxTime  float64
	warned   bool

	first, second *board.Tile
	checkTimer    float64
	flipsSince    int

	pairValue  int
	pairsFound int
	credited   int // currency already handed to progression

	hintsLeft int

	breakdown     reward.Breakdown
	doubled       bool
	doubledExtra  int
	extraTimeUsed bool
	adInFlight    bool
}

// New deals the board and starts the countdown. The interstitial cadence
// is checked here, before the first tick.
func New(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if opts.Progression == nil {
		return nil, ErrNoProgression
	}

	tuning := opts.Tuning
	if tuning.Levels.Total == 0 {
		tuning = config.DefaultTuning()
	}

	s := &Session{
		id:       uuid.NewString(),
		cfg:      opts.Config,
		tuning:   tuning.Session,
		progress: opts.Progression,
		ads:      opts.Ads,
		nav:      opts.Navigator,
		hooks:    opts.Hooks,
		logger:   opts.Logger,
		state:    Playing,
	}
	if s.ads == nil {
		s.ads = noAds{}
	}
	if s.nav == nil {
		s.nav = noNavigator{}
	}
	if s.hooks == nil {
		s.hooks = NopHooks{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	src := opts.Source
	if src == nil {
		src = board.NewCryptoSource()
	}
	b, err := board.New(s.cfg.GridSize, s.cfg.Pool(), src,
		board.WithFlipTime(s.tuning.FlipTime),
		board.WithDecoyAttempts(s.tuning.DecoyAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.board = b

	s.pairValue = s.progress.PairValue()
	s.maxTime = float64(s.cfg.TotalTime(s.progress.BaseTime()))
	s.timeLeft = s.maxTime
	if s.cfg.GridSize >= s.tuning.HintMinGridSize {
		s.hintsLeft = s.tuning.HintsPerSession
	}

	if s.progress.GamesPlayed() >= tuning.Ads.InterstitialGrace &&
		s.progress.GamesSinceInterstitial() >= tuning.Ads.InterstitialEvery {
		s.ads.ShowInterstitial()
		s.progress.RecordInterstitialShown()
	}

	s.logger.Debug("session started",
		"id", s.id, "level", s.cfg.Level, "grid", s.cfg.GridSize,
		"time", s.maxTime, "pairValue", s.pairValue)
	return s, nil
}

// ID returns the unique session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the level ruleset of this session.
func (s *Session) Config() level.Config { return s.cfg }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Board returns the playfield. Callers must treat it as read-only.
func (s *Session) Board() *board.Board { return s.board }

// TimeLeft returns the remaining seconds.
func (s *Session) TimeLeft() float64 { return s.timeLeft }

// PairsFound returns the pairs matched so far.
func (s *Session) PairsFound() int { return s.pairsFound }

// HintsLeft returns the remaining hint budget.
func (s *Session) HintsLeft() int { return s.hintsLeft }

// Breakdown returns the victory payout; zero before victory.
func (s *Session) Breakdown() reward.Breakdown { return s.breakdown }

// HintsOffered reports whether this board size gets hints at all.
func (s *Session) HintsOffered() bool {
	return s.cfg.GridSize >= s.tuning.HintMinGridSize && s.tuning.HintsPerSession > 0
}

// SelectTile flips the tile in slot pos. The second distinct tile starts
// the reveal delay. Anything else is ignored and reported as false.
func (s *Session) SelectTile(pos int) bool {
	if s.state != Playing {
		return false
	}
	t := s.board.TileAt(pos)
	if t == nil || !t.Selectable() {
		return false
	}

	t.Flip()
	s.flipsSince++
	s.hooks.TileFlipStarted(pos)

	if s.first == nil {
		s.first = t
		return true
	}
	s.second = t
	s.state = CheckingMatch
	s.checkTimer = s.tuning.RevealDelay
	return true
}

// RequestPause freezes the session. The countdown, animations and a
// running reveal delay all stop until RequestResume. Pausing is accepted
// mid-check as well; resume then returns to CheckingMatch.
func (s *Session) RequestPause() bool {
	if !s.state.InPlay() {
		return false
	}
	s.resumeState = s.state
	s.state = Paused
	return true
}

// RequestResume continues a paused session where it stopped.
func (s *Session) RequestResume() bool {
	if s.state != Paused {
		return false
	}
	s.state = s.resumeState
	return true
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause() bool {
	if s.state == Paused {
		return s.RequestResume()
	}
	return s.RequestPause()
}

// RequestHint highlights a hidden pair and two decoys. A hint that cannot
// be placed costs nothing.
func (s *Session) RequestHint() bool {
	if s.state != Playing || s.hintsLeft <= 0 || !s.HintsOffered() {
		return false
	}
	slots, ok := s.board.TriggerHint(board.Highlight{
		Duration:  s.tuning.HintDuration,
		Intensity: s.tuning.HintIntensity,
	})
	if !ok {
		return false
	}
	s.hintsLeft--
	s.progress.RecordHintUsed()
	s.hooks.HintFired(slots)
	return true
}

// CanDoubleReward reports whether a double-reward ad may be requested now.
func (s *Session) CanDoubleReward() bool {
	return s.state == Victory && !s.doubled && !s.adInFlight && s.ads.RewardedAvailable()
}

// RequestDoubleReward shows a rewarded ad that, once earned, grants the
// victory total a second time.
func (s *Session) RequestDoubleReward() bool {
	if !s.CanDoubleReward() {
		return false
	}
	s.adInFlight = true
	s.ads.ShowRewarded(s.settleOnce(s.onDoubleResult))
	return true
}

func (s *Session) onDoubleResult(r AdResult) {
	if r != AdEarned || s.doubled || s.state != Victory {
		return
	}
	s.doubled = true
	s.doubledExtra = reward.DoubledExtra(s.breakdown.Total)
	s.credit(s.doubledExtra)
	s.progress.RecordRewardedWatched()
	s.logger.Debug("reward doubled", "id", s.id, "extra", s.doubledExtra)
}

// CanExtraTime reports whether an extra-time ad may be requested now.
func (s *Session) CanExtraTime() bool {
	return s.state == Defeat && !s.extraTimeUsed && !s.adInFlight && s.ads.RewardedAvailable()
}

// RequestExtraTime shows a rewarded ad that, once earned, puts a defeated
// session back into play with a few more seconds. Once per session.
func (s *Session) RequestExtraTime() bool {
	if !s.CanExtraTime() {
		return false
	}
	s.adInFlight = true
	s.ads.ShowRewarded(s.settleOnce(s.onExtraTimeResult))
	return true
}

func (s *Session) onExtraTimeResult(r AdResult) {
	if r != AdEarned || s.extraTimeUsed || s.state != Defeat {
		return
	}
	s.extraTimeUsed = true
	s.timeLeft = float64(s.tuning.ExtraTimeSeconds)
	s.first, s.second = nil, nil
	s.state = Playing
	s.progress.RecordRewardedWatched()
	s.logger.Debug("extra time granted", "id", s.id, "seconds", s.tuning.ExtraTimeSeconds)
}

// settleOnce wraps an ad callback so that only its first delivery counts.
func (s *Session) settleOnce(fn func(AdResult)) func(AdResult) {
	done := false
	return func(r AdResult) {
		if done {
			return
		}
		done = true
		s.adInFlight = false
		fn(r)
	}
}

// Retry asks the navigator to restart this level.
func (s *Session) Retry() bool {
	if !s.state.Over() && s.state != Paused {
		return false
	}
	s.nav.Retry(s.cfg.Level)
	return true
}

// Advance asks the navigator for the next level. Only after a victory.
func (s *Session) Advance() bool {
	if s.state != Victory {
		return false
	}
	s.nav.Advance(s.cfg.Level + 1)
	return true
}

// GoHome asks the navigator to leave the game.
func (s *Session) GoHome() bool {
	if !s.state.Over() && s.state != Paused {
		return false
	}
	s.nav.Home()
	return true
}

// Update advances the session by dt seconds. The countdown is applied
// first, so a timeout wins over a reveal delay ending in the same tick.
func (s *Session) Update(dt float64) {
	switch s.state {
	case Paused:
		return
	case Victory, Defeat:
		s.board.Update(dt)
		return
	}

	s.timeLeft -= dt
	if !s.warned && s.timeLeft <= s.tuning.WarningThreshold {
		s.warned = true
		s.hooks.TimeWarning()
	}
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.settlePending()
		s.defeat()
		return
	}

	s.board.Update(dt)

	if s.state == CheckingMatch {
		s.checkTimer -= dt
		if s.checkTimer <= 0 {
			s.resolve()
		}
	}
}

// resolve compares the two selected tiles once the reveal delay is over.
func (s *Session) resolve() {
	a, b := s.first, s.second
	s.first, s.second = nil, nil
	s.state = Playing

	if s.match(a, b) {
		if s.board.IsAllMatched() {
			s.victory()
		}
		return
	}

	// Reshuffles only follow a miss, never a match.
	if s.cfg.ShuffleEnabled && s.flipsSince >= s.cfg.ShuffleInterval {
		if s.board.ShuffleUnmatched() {
			s.hooks.Reshuffled()
		}
		s.flipsSince = 0
	}
}

// match settles a selected pair and reports whether it matched.
func (s *Session) match(a, b *board.Tile) bool {
	posA, posB := s.board.SlotOf(a), s.board.SlotOf(b)
	if a.CharacterID() == b.CharacterID() {
		a.MarkMatched()
		b.MarkMatched()
		s.pairsFound++
		s.credit(s.pairValue)
		s.hooks.TileMatched(posA, posB)
		return true
	}
	a.FlipBack()
	b.FlipBack()
	s.hooks.TileMismatched(posA, posB)
	return false
}

// settlePending closes any selection when time runs out: a complete pair
// is still credited, a lone or mismatched tile is turned back down.
func (s *Session) settlePending() {
	switch {
	case s.first != nil && s.second != nil:
		s.match(s.first, s.second)
	case s.first != nil:
		s.first.FlipBack()
	}
	s.first, s.second = nil, nil
}

func (s *Session) credit(amount int) {
	if amount <= 0 {
		return
	}
	s.credited += amount
	s.progress.AddCurrency(amount)
}

func (s *Session) victory() {
	s.state = Victory
	s.breakdown = reward.VictoryReward(s.pairValue, s.pairsFound, s.timeLeft, s.cfg.RewardMultiplier)

	// Pair values were paid as they were found; pay the rest now.
	paidForPairs := reward.RunningTotal(s.pairValue, s.pairsFound)
	s.credit(s.breakdown.Total - paidForPairs)

	if s.cfg.Level > s.progress.MaxLevelCompleted() {
		s.progress.SetMaxLevelCompleted(s.cfg.Level)
	}
	s.progress.RecordGamePlayed(true, s.pairsFound)
	s.hooks.Victory(s.breakdown)
	s.logger.Debug("session ended", "id", s.id, "outcome", "victory",
		"pairs", s.pairsFound, "total", s.breakdown.Total, "timeLeft", s.timeLeft)
}

func (s *Session) defeat() {
	s.state = Defeat
	s.progress.RecordGamePlayed(false, s.pairsFound)
	s.hooks.Defeat(s.pairsFound)
	s.logger.Debug("session ended", "id", s.id, "outcome", "defeat", "pairs", s.pairsFound)
}

// Earned returns the currency granted by this session so far.
func (s *Session) Earned() int { return s.credited }
