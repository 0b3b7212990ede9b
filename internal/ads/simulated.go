// Package ads provides a simulated ad network for the terminal front end.
//
// A rewarded ad is queued when shown and settles when the host calls
// Deliver, usually after a short "watching" delay. Whether it is earned
// depends on the configured fill rate.
package ads

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/board"
	"github.com/vovakirdan/tui-pairs/internal/session"
)

// DefaultFillRate is the percentage of rewarded ads that are earned.
const DefaultFillRate = 90

// Options configures a Simulated network.
type Options struct {
	FillRate  int          // 0..100, percentage of earned ads
	Disabled  bool         // no inventory: RewardedAvailable reports false
	Immediate bool         // settle rewarded ads inside ShowRewarded
	Source    board.Source // nil means a crypto source
	Logger    *log.Logger
}

// Simulated implements session.Ads. It is safe for concurrent use.
type Simulated struct {
	mu            sync.Mutex
	opts          Options
	rng           board.Source
	pending       []func(session.AdResult)
	rewarded      int
	interstitials int
	logger        *log.Logger
}

var _ session.Ads = (*Simulated)(nil)

// NewSimulated creates a simulated network.
func NewSimulated(opts Options) *Simulated {
	opts.FillRate = max(0, min(100, opts.FillRate))
	rng := opts.Source
	if rng == nil {
		rng = board.NewCryptoSource()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulated{opts: opts, rng: rng, logger: logger}
}

// RewardedAvailable reports whether a rewarded ad can be shown now.
// Only one rewarded ad plays at a time.
func (s *Simulated) RewardedAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.opts.Disabled && len(s.pending) == 0
}

// ShowRewarded queues done until Deliver, or settles it at once in
// immediate mode.
func (s *Simulated) ShowRewarded(done func(session.AdResult)) {
	s.mu.Lock()
	s.rewarded++
	if s.opts.Disabled {
		s.mu.Unlock()
		done(session.AdFailed)
		return
	}
	if s.opts.Immediate {
		r := s.roll()
		s.mu.Unlock()
		done(r)
		return
	}
	s.pending = append(s.pending, done)
	s.mu.Unlock()
	s.logger.Debug("rewarded ad started")
}

// ShowInterstitial plays an interstitial. Nothing is waited for.
func (s *Simulated) ShowInterstitial() {
	s.mu.Lock()
	s.interstitials++
	n := s.interstitials
	s.mu.Unlock()
	s.logger.Debug("interstitial shown", "count", n)
}

// Pending reports whether a rewarded ad is waiting for Deliver.
func (s *Simulated) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Deliver settles every queued rewarded ad and returns how many were earned.
// Callbacks run on the caller's goroutine without the lock held.
func (s *Simulated) Deliver() int {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	results := make([]session.AdResult, len(queued))
	for i := range queued {
		results[i] = s.roll()
	}
	s.mu.Unlock()

	earned := 0
	for i, done := range queued {
		if results[i] == session.AdEarned {
			earned++
		}
		done(results[i])
	}
	if len(queued) > 0 {
		s.logger.Debug("rewarded ads settled", "count", len(queued), "earned", earned)
	}
	return earned
}

// Cancel fails every queued rewarded ad, as when the player skips it.
func (s *Simulated) Cancel() {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, done := range queued {
		done(session.AdFailed)
	}
}

// Counts returns the number of rewarded and interstitial ads shown.
func (s *Simulated) Counts() (rewarded, interstitials int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rewarded, s.interstitials
}

// roll decides one rewarded outcome; s.mu must be held.
func (s *Simulated) roll() session.AdResult {
	if s.rng.IntN(100) < s.opts.FillRate {
		return session.AdEarned
	}
	return session.AdFailed
}
