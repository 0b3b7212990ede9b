package session

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/board"
	"github.com/vovakirdan/tui-pairs/internal/level"
	"github.com/vovakirdan/tui-pairs/internal/reward"
)

type gameRecord struct {
	victory bool
	pairs   int
}

type fakeProgress struct {
	pairValue, baseTime int

	currency   int
	maxLevel   int
	games      []gameRecord
	hints      int
	rewarded   int
	played     int
	sinceInter int
	interShown int
}

func (p *fakeProgress) PairValue() int { return p.pairValue }
func (p *fakeProgress) BaseTime() int  { return p.baseTime }
func (p *fakeProgress) RecordGamePlayed(victory bool, pairs int) {
	p.games = append(p.games, gameRecord{victory, pairs})
}
func (p *fakeProgress) AddCurrency(n int)              { p.currency += n }
func (p *fakeProgress) MaxLevelCompleted() int         { return p.maxLevel }
func (p *fakeProgress) SetMaxLevelCompleted(level int) { p.maxLevel = level }
func (p *fakeProgress) RecordHintUsed()                { p.hints++ }
func (p *fakeProgress) RecordRewardedWatched()         { p.rewarded++ }
func (p *fakeProgress) GamesPlayed() int               { return p.played }
func (p *fakeProgress) GamesSinceInterstitial() int    { return p.sinceInter }
func (p *fakeProgress) RecordInterstitialShown()       { p.interShown++ }

// fakeAds keeps callbacks until the test delivers them.
type fakeAds struct {
	available     bool
	pending       []func(AdResult)
	interstitials int
}

func (a *fakeAds) RewardedAvailable() bool { return a.available }
func (a *fakeAds) ShowRewarded(done func(AdResult)) {
	a.pending = append(a.pending, done)
}
func (a *fakeAds) ShowInterstitial() { a.interstitials++ }

func (a *fakeAds) deliver(r AdResult) {
	for _, done := range a.pending {
		done(r)
	}
}

type recordingHooks struct {
	NopHooks
	flips, matched, mismatched, reshuffles, hints, warnings int
	victories, defeats                                      int
}

func (h *recordingHooks) TileFlipStarted(int)      { h.flips++ }
func (h *recordingHooks) TileMatched(int, int)     { h.matched++ }
func (h *recordingHooks) TileMismatched(int, int)  { h.mismatched++ }
func (h *recordingHooks) Reshuffled()              { h.reshuffles++ }
func (h *recordingHooks) HintFired([4]int)         { h.hints++ }
func (h *recordingHooks) Victory(reward.Breakdown) { h.victories++ }
func (h *recordingHooks) Defeat(int)               { h.defeats++ }
func (h *recordingHooks) TimeWarning()             { h.warnings++ }

type fakeNav struct {
	retried, advanced int
	home              bool
}

func (n *fakeNav) Retry(level int)   { n.retried = level }
func (n *fakeNav) Advance(level int) { n.advanced = level }
func (n *fakeNav) Home()             { n.home = true }

type harness struct {
	s     *Session
	prog  *fakeProgress
	ads   *fakeAds
	hooks *recordingHooks
	nav   *fakeNav
}

func newHarness(t *testing.T, cfg level.Config) *harness {
	t.Helper()
	h := &harness{
		prog:  &fakeProgress{pairValue: 1, baseTime: 30},
		ads:   &fakeAds{available: true},
		hooks: &recordingHooks{},
		nav:   &fakeNav{},
	}
	s, err := New(Options{
		Config:      cfg,
		Progression: h.prog,
		Ads:         h.ads,
		Navigator:   h.nav,
		Hooks:       h.hooks,
		Source:      board.NewSeededSource(7),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	h.s = s
	return h
}

func mustConfig(t *testing.T, lvl, grid, pool int) level.Config {
	t.Helper()
	cfg, err := level.New(lvl, grid, pool)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

// pairs returns the slot pairs sharing a symbol, in slot order.
func pairs(s *Session) [][2]int {
	first := make(map[int]int)
	var out [][2]int
	for pos, tile := range s.Board().Tiles() {
		if tile.Matched() {
			continue
		}
		id := tile.CharacterID()
		if p, ok := first[id]; ok {
			out = append(out, [2]int{p, pos})
			delete(first, id)
			continue
		}
		first[id] = pos
	}
	return out
}

// mismatch returns two unmatched slots holding different symbols.
func mismatch(t *testing.T, s *Session) (int, int) {
	t.Helper()
	tiles := s.Board().Tiles()
	for a := range tiles {
		for b := a + 1; b < len(tiles); b++ {
			if tiles[a].Selectable() && tiles[b].Selectable() && tiles[a].CharacterID() != tiles[b].CharacterID() {
				return a, b
			}
		}
	}
	t.Fatal("no mismatching tiles left")
	return -1, -1
}

func (h *harness) pick(t *testing.T, a, b int) {
	t.Helper()
	if !h.s.SelectTile(a) || !h.s.SelectTile(b) {
		t.Fatalf("selecting %d and %d should be accepted", a, b)
	}
	if h.s.State() != CheckingMatch {
		t.Fatalf("state = %v after two picks, expected CheckingMatch", h.s.State())
	}
}

func TestFullClear(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))

	for _, p := range pairs(h.s) {
		h.pick(t, p[0], p[1])
		h.s.Update(0.8)
	}

	if h.s.State() != Victory {
		t.Fatalf("state = %v, expected Victory", h.s.State())
	}
	if h.hooks.matched != 8 || h.hooks.reshuffles != 0 || h.hooks.victories != 1 {
		t.Errorf("hooks: matched=%d reshuffles=%d victories=%d", h.hooks.matched, h.hooks.reshuffles, h.hooks.victories)
	}
	if h.s.PairsFound() != 8 {
		t.Errorf("pairsFound = %d, expected 8", h.s.PairsFound())
	}

	// 30s - 8*0.8s = 23.6s left: bonus 11, total 8 + 11.
	b := h.s.Breakdown()
	if b.PairsReward != 8 || b.TimeBonus != 11 || b.Total != 19 {
		t.Errorf("breakdown = %+v", b)
	}
	if h.prog.currency != 19 || h.s.Earned() != 19 {
		t.Errorf("currency = %d earned = %d, expected 19", h.prog.currency, h.s.Earned())
	}
	if h.prog.maxLevel != 1 {
		t.Errorf("max level = %d, expected 1", h.prog.maxLevel)
	}
	if len(h.prog.games) != 1 || h.prog.games[0] != (gameRecord{true, 8}) {
		t.Errorf("games = %+v", h.prog.games)
	}
}

func TestVictoryCreditsOnlyTheRemainder(t *testing.T) {
	cfg := mustConfig(t, 40, 4, 8)
	cfg.RewardMultiplier = 1.5
	h := newHarness(t, cfg)
	h.prog.pairValue = 5
	h.prog.maxLevel = 50

	// Rebuild with pair value 5.
	s, err := New(Options{Config: cfg, Progression: h.prog, Source: board.NewSeededSource(7)})
	if err != nil {
		t.Fatal(err)
	}
	h.s = s

	for i, p := range pairs(s) {
		s.SelectTile(p[0])
		s.SelectTile(p[1])
		s.Update(0.8)
		if i < 7 && h.prog.currency != 5*(i+1) {
			t.Fatalf("after %d pairs currency = %d", i+1, h.prog.currency)
		}
	}

	b := s.Breakdown()
	if h.prog.currency != b.Total {
		t.Errorf("currency %d should equal the victory total %d", h.prog.currency, b.Total)
	}
	if h.prog.maxLevel != 50 {
		t.Error("max level must not go down")
	}
}

func TestMismatchAndReshuffle(t *testing.T) {
	cfg := mustConfig(t, 50, 4, 8)
	cfg.ShuffleEnabled = true
	cfg.ShuffleInterval = 2
	h := newHarness(t, cfg)

	// A match never reshuffles, even with the interval reached.
	p := pairs(h.s)[0]
	h.pick(t, p[0], p[1])
	h.s.Update(0.8)
	if h.hooks.matched != 1 || h.hooks.reshuffles != 0 {
		t.Fatalf("match: matched=%d reshuffles=%d", h.hooks.matched, h.hooks.reshuffles)
	}

	a, b := mismatch(t, h.s)
	h.pick(t, a, b)
	h.s.Update(0.8)
	if h.hooks.mismatched != 1 || h.hooks.reshuffles != 1 {
		t.Fatalf("miss: mismatched=%d reshuffles=%d", h.hooks.mismatched, h.hooks.reshuffles)
	}
	if h.s.State() != Playing {
		t.Errorf("state = %v, expected Playing", h.s.State())
	}
	for _, tile := range h.s.Board().Tiles() {
		if !tile.Matched() && (tile.Revealed() || tile.Animating()) {
			t.Error("reshuffle should leave every unmatched tile hidden")
		}
	}

	// Counter was reset: the next miss (2 flips) triggers again, not earlier.
	a, b = mismatch(t, h.s)
	h.s.SelectTile(a)
	h.s.Update(0.1)
	if h.hooks.reshuffles != 1 {
		t.Error("a single flip must not reshuffle")
	}
	h.s.SelectTile(b)
	h.s.Update(0.8)
	if h.hooks.reshuffles != 2 {
		t.Errorf("reshuffles = %d, expected 2", h.hooks.reshuffles)
	}
}

func TestMismatchWithoutShuffleFlipsBack(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	a, b := mismatch(t, h.s)
	h.pick(t, a, b)
	h.s.Update(0.8)
	h.s.Update(0.5)

	for _, pos := range []int{a, b} {
		tile := h.s.Board().TileAt(pos)
		if tile.Revealed() || tile.Matched() || tile.Animating() {
			t.Errorf("slot %d should be hidden again", pos)
		}
	}
	if h.hooks.reshuffles != 0 {
		t.Error("shuffle is disabled")
	}
	if !h.s.SelectTile(a) {
		t.Error("a flipped-back tile is selectable again")
	}
}

func TestInvalidSelectionsAreIgnored(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))

	if h.s.SelectTile(-1) || h.s.SelectTile(16) {
		t.Error("off-board selection must be ignored")
	}
	if !h.s.SelectTile(0) {
		t.Fatal("first selection should be accepted")
	}
	if h.s.SelectTile(0) {
		t.Error("selecting the same tile twice must be ignored")
	}

	p := pairs(h.s)
	// Finish whatever pair slot 0 belongs to, so the board has a matched pair.
	for _, pr := range p {
		if pr[0] == 0 || pr[1] == 0 {
			other := pr[0] + pr[1]
			h.s.SelectTile(other)
		}
	}
	if h.s.State() != CheckingMatch {
		t.Fatalf("state = %v", h.s.State())
	}
	if h.s.SelectTile(5) {
		t.Error("selection during CheckingMatch must be ignored")
	}
	h.s.Update(0.8)
	if h.s.SelectTile(0) {
		t.Error("matched tile must not be selectable")
	}
	if h.hooks.flips != 2 {
		t.Errorf("flips = %d, expected 2", h.hooks.flips)
	}
}

func TestTimeoutWinsOverPendingMatch(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	p := pairs(h.s)[0]
	h.pick(t, p[0], p[1])

	h.s.Update(31)

	if h.s.State() != Defeat {
		t.Fatalf("state = %v, expected Defeat", h.s.State())
	}
	if h.s.TimeLeft() != 0 {
		t.Errorf("time left = %v, expected 0", h.s.TimeLeft())
	}
	if h.s.PairsFound() != 1 || h.hooks.matched != 1 {
		t.Errorf("pending match should be credited once: pairs=%d hooks=%d", h.s.PairsFound(), h.hooks.matched)
	}
	if h.prog.currency != 1 {
		t.Errorf("currency = %d, expected 1", h.prog.currency)
	}
	if len(h.prog.games) != 1 || h.prog.games[0] != (gameRecord{false, 1}) {
		t.Errorf("games = %+v", h.prog.games)
	}

	h.s.Update(1)
	if h.s.PairsFound() != 1 || h.prog.currency != 1 || h.hooks.defeats != 1 {
		t.Error("ticks after defeat must not settle anything again")
	}
}

func TestTimeoutOnLastPairIsStillDefeat(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 2, 2))
	all := pairs(h.s)
	h.pick(t, all[0][0], all[0][1])
	h.s.Update(0.8)
	h.pick(t, all[1][0], all[1][1])
	h.s.Update(100)

	if h.s.State() != Defeat || h.hooks.victories != 0 {
		t.Errorf("state = %v victories = %d, expected Defeat", h.s.State(), h.hooks.victories)
	}
	if h.s.PairsFound() != 2 {
		t.Errorf("pairs = %d, expected 2", h.s.PairsFound())
	}
}

func TestTimeoutHidesPendingMismatch(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	a, b := mismatch(t, h.s)
	h.pick(t, a, b)
	h.s.Update(30)
	h.s.Update(1) // finish the flip back

	if h.s.State() != Defeat {
		t.Fatalf("state = %v", h.s.State())
	}
	for _, pos := range []int{a, b} {
		if tile := h.s.Board().TileAt(pos); tile.Revealed() || tile.Matched() {
			t.Errorf("slot %d should end hidden", pos)
		}
	}
	if h.prog.currency != 0 || h.hooks.reshuffles != 0 {
		t.Error("a timed-out miss neither pays nor reshuffles")
	}
}

func TestTimeWarningFiresOnce(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))

	h.s.Update(19)
	if h.hooks.warnings != 0 {
		t.Fatal("warning fired too early")
	}
	h.s.Update(1.5)
	h.s.Update(1)
	h.s.Update(1)
	if h.hooks.warnings != 1 {
		t.Errorf("warnings = %d, expected 1", h.hooks.warnings)
	}
}

func TestPauseFreezesEverything(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	p := pairs(h.s)[0]
	h.pick(t, p[0], p[1])
	h.s.Update(0.5)
	left := h.s.TimeLeft()

	if !h.s.RequestPause() {
		t.Fatal("pause should be accepted while checking a pair")
	}
	if h.s.RequestPause() {
		t.Error("pausing twice is a no-op")
	}
	h.s.Update(10)
	if h.s.TimeLeft() != left || h.s.State() != Paused || h.s.PairsFound() != 0 {
		t.Error("paused session must not advance")
	}
	if h.s.SelectTile(3) || h.s.RequestHint() {
		t.Error("input must be ignored while paused")
	}

	if !h.s.RequestResume() || h.s.State() != CheckingMatch {
		t.Fatalf("resume should return to CheckingMatch, got %v", h.s.State())
	}
	if h.s.RequestResume() {
		t.Error("resume when not paused is a no-op")
	}

	// 0.5s of the 0.8s reveal delay were spent before the pause.
	h.s.Update(0.2)
	if h.s.PairsFound() != 0 {
		t.Error("reveal delay should not be over yet")
	}
	h.s.Update(0.15)
	if h.s.PairsFound() != 1 || h.s.State() != Playing {
		t.Errorf("reveal delay should resume where it stopped: pairs=%d state=%v", h.s.PairsFound(), h.s.State())
	}

	if !h.s.TogglePause() || h.s.State() != Paused || !h.s.TogglePause() || h.s.State() != Playing {
		t.Error("TogglePause should pause and resume")
	}
}

func TestPauseNotAllowedAfterEnd(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	h.s.Update(40)
	if h.s.RequestPause() || h.s.TogglePause() {
		t.Error("a finished session cannot be paused")
	}
}

func TestHints(t *testing.T) {
	t.Run("small board gets none", func(t *testing.T) {
		h := newHarness(t, mustConfig(t, 1, 4, 8))
		if h.s.HintsOffered() || h.s.HintsLeft() != 0 || h.s.RequestHint() {
			t.Error("4x4 boards get no hints")
		}
	})

	t.Run("budget", func(t *testing.T) {
		h := newHarness(t, mustConfig(t, 40, 6, 22))
		for i := 0; i < 3; i++ {
			if !h.s.RequestHint() {
				t.Fatalf("hint %d should succeed", i+1)
			}
		}
		if h.s.RequestHint() {
			t.Error("fourth hint must be refused")
		}
		if h.prog.hints != 3 || h.hooks.hints != 3 || h.s.HintsLeft() != 0 {
			t.Errorf("hints: progress=%d hooks=%d left=%d", h.prog.hints, h.hooks.hints, h.s.HintsLeft())
		}
	})

	t.Run("only while playing", func(t *testing.T) {
		h := newHarness(t, mustConfig(t, 40, 6, 22))
		a, b := mismatch(t, h.s)
		h.pick(t, a, b)
		if h.s.RequestHint() {
			t.Error("hint during CheckingMatch must be refused")
		}
	})

	t.Run("failed hint is free", func(t *testing.T) {
		// One symbol everywhere: no decoys exist.
		h := newHarness(t, mustConfig(t, 40, 6, 1))
		if h.s.RequestHint() {
			t.Fatal("hint should be infeasible")
		}
		if h.s.HintsLeft() != 3 || h.prog.hints != 0 {
			t.Error("a failed hint must not consume budget")
		}
	})
}

func winSession(t *testing.T, h *harness) {
	t.Helper()
	for _, p := range pairs(h.s) {
		h.pick(t, p[0], p[1])
		h.s.Update(0.8)
	}
	if h.s.State() != Victory {
		t.Fatalf("state = %v, expected Victory", h.s.State())
	}
}

func TestDoubleReward(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	if h.s.RequestDoubleReward() {
		t.Error("double reward is only offered after a victory")
	}
	winSession(t, h)
	total := h.s.Breakdown().Total
	before := h.prog.currency

	if !h.s.RequestDoubleReward() {
		t.Fatal("double reward should be requested")
	}
	if h.s.RequestDoubleReward() {
		t.Error("only one request may be in flight")
	}

	h.ads.deliver(AdEarned)
	if h.prog.currency != before+total {
		t.Errorf("currency = %d, expected %d", h.prog.currency, before+total)
	}
	if h.prog.rewarded != 1 {
		t.Errorf("rewarded = %d", h.prog.rewarded)
	}

	h.ads.deliver(AdEarned)
	if h.prog.currency != before+total || h.prog.rewarded != 1 {
		t.Error("a repeated earned callback must not double again")
	}
	if h.s.RequestDoubleReward() {
		t.Error("reward can only be doubled once")
	}
	v := h.s.Snapshot()
	if !v.Doubled || v.DoubledExtra != total || v.CanDouble {
		t.Errorf("view = doubled %v extra %d can %v", v.Doubled, v.DoubledExtra, v.CanDouble)
	}
}

func TestDoubleRewardFailureChangesNothing(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	winSession(t, h)
	before := h.prog.currency

	h.s.RequestDoubleReward()
	h.ads.deliver(AdFailed)

	if h.prog.currency != before || h.prog.rewarded != 0 || h.s.State() != Victory {
		t.Error("failed ad must leave the session unchanged")
	}
	if !h.s.CanDoubleReward() {
		t.Error("after a failure the player may try again")
	}

	h.ads.available = false
	if h.s.RequestDoubleReward() {
		t.Error("no ad available, no request")
	}
}

func TestExtraTime(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	if h.s.RequestExtraTime() {
		t.Error("extra time is only offered after a defeat")
	}

	h.s.SelectTile(0)
	h.s.Update(40)
	if h.s.State() != Defeat {
		t.Fatalf("state = %v", h.s.State())
	}

	if !h.s.RequestExtraTime() {
		t.Fatal("extra time should be requested")
	}
	h.ads.deliver(AdEarned)
	if h.s.State() != Playing || h.s.TimeLeft() != 15 {
		t.Fatalf("state = %v time = %v, expected Playing with 15s", h.s.State(), h.s.TimeLeft())
	}
	if h.prog.rewarded != 1 {
		t.Errorf("rewarded = %d", h.prog.rewarded)
	}
	h.ads.deliver(AdEarned)
	if h.s.TimeLeft() != 15 || h.prog.rewarded != 1 {
		t.Error("repeated callback must be a no-op")
	}

	// The session plays on and can still be won.
	h.s.Update(0.5)
	winSession(t, h)
	if len(h.prog.games) != 2 || h.prog.games[0].victory || !h.prog.games[1].victory {
		t.Errorf("games = %+v", h.prog.games)
	}

	h2 := newHarness(t, mustConfig(t, 1, 4, 8))
	h2.s.Update(40)
	h2.s.RequestExtraTime()
	h2.ads.deliver(AdEarned)
	h2.s.Update(20)
	if h2.s.State() != Defeat || h2.s.RequestExtraTime() {
		t.Error("extra time is granted once per session")
	}
}

func TestExtraTimeFailure(t *testing.T) {
	h := newHarness(t, mustConfig(t, 1, 4, 8))
	h.s.Update(40)
	h.s.RequestExtraTime()
	h.ads.deliver(AdFailed)
	if h.s.State() != Defeat || h.s.TimeLeft() != 0 || !h.s.CanExtraTime() {
		t.Error("failed ad must leave the defeat untouched")
	}
}

func TestInterstitialCadence(t *testing.T) {
	tests := []struct {
		played, since int
		shown         bool
	}{
		{0, 0, false},
		{2, 5, false},
		{3, 4, false},
		{3, 5, true},
		{12, 7, true},
	}
	for _, tt := range tests {
		prog := &fakeProgress{pairValue: 1, baseTime: 30, played: tt.played, sinceInter: tt.since}
		ads := &fakeAds{}
		if _, err := New(Options{Config: mustConfig(t, 1, 4, 8), Progression: prog, Ads: ads}); err != nil {
			t.Fatal(err)
		}
		if (ads.interstitials == 1) != tt.shown || (prog.interShown == 1) != tt.shown {
			t.Errorf("played=%d since=%d: interstitials=%d recorded=%d, expected shown=%v",
				tt.played, tt.since, ads.interstitials, prog.interShown, tt.shown)
		}
	}
}

func TestNavigation(t *testing.T) {
	h := newHarness(t, mustConfig(t, 7, 4, 8))
	if h.s.Retry() || h.s.Advance() || h.s.GoHome() {
		t.Error("menu actions are not available mid-game")
	}

	h.s.RequestPause()
	if !h.s.GoHome() || !h.nav.home {
		t.Error("home is available from the pause menu")
	}
	h.s.RequestResume()

	h.s.Update(100)
	if h.s.Advance() {
		t.Error("advance requires a victory")
	}
	if !h.s.Retry() || h.nav.retried != 7 {
		t.Errorf("retry should target level 7, got %d", h.nav.retried)
	}

	w := newHarness(t, mustConfig(t, 7, 4, 8))
	winSession(t, w)
	if !w.s.Advance() || w.nav.advanced != 8 {
		t.Errorf("advance should target level 8, got %d", w.nav.advanced)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(Options{Config: level.Config{Level: 1, GridSize: 3, PoolCount: 4}, Progression: &fakeProgress{}}); !errors.Is(err, level.ErrGridSize) {
		t.Errorf("odd grid: err = %v", err)
	}
	if _, err := New(Options{Config: mustConfig(t, 1, 4, 8)}); !errors.Is(err, ErrNoProgression) {
		t.Errorf("nil progression: err = %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	cfg := mustConfig(t, 3, 4, 8)
	cfg.TimeBonusSeconds = 5
	h := newHarness(t, cfg)
	h.s.SelectTile(2)

	v := h.s.Snapshot()
	if v.ID == "" || v.ID != h.s.ID() {
		t.Error("snapshot should carry the session id")
	}
	if v.Level != 3 || v.State != Playing || v.MaxTime != 35 || v.TotalPairs != 8 || len(v.Tiles) != 16 {
		t.Errorf("view = %+v", v)
	}
	if !v.Tiles[2].Animating || v.Tiles[2].Slot != 2 {
		t.Errorf("slot 2 should be flipping: %+v", v.Tiles[2])
	}
	if v.Tiles[2].FaceUp() {
		t.Error("tile is not face up before its flip is half way")
	}
	h.s.Update(0.3)
	if !h.s.Snapshot().Tiles[2].FaceUp() {
		t.Error("tile should be face up after the flip")
	}
}
