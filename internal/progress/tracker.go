package progress

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/session"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// Store is the persistence the tracker needs. *storage.Store implements it.
type Store interface {
	LoadProfile(name string) (storage.ProfileRecord, bool, error)
	SaveProfile(p storage.ProfileRecord) error
	SaveOutcome(p storage.ProfileRecord, rec storage.SessionRecord) (int64, error)
}

// Tracker owns one profile and writes it through to the store after every
// change. A nil store keeps the profile in memory only. Tracker satisfies
// session.Progression and is safe for concurrent use.
type Tracker struct {
	// saveMu orders writes to the store: it is held from the change through
	// the save, so a later snapshot never lands before an earlier one.
	saveMu  sync.Mutex
	mu      sync.Mutex
	profile Profile
	economy config.EconomyTuning
	store   Store
	logger  *log.Logger
}

var _ session.Progression = (*Tracker)(nil)

// Open loads the named profile from store, creating it when missing.
func Open(store Store, name string, economy config.EconomyTuning, logger *log.Logger) (*Tracker, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		profile: NewProfile(name),
		economy: economy,
		store:   store,
		logger:  logger,
	}
	if store == nil {
		return t, nil
	}

	rec, found, err := store.LoadProfile(name)
	if err != nil {
		return nil, err
	}
	if found {
		t.profile = profileFromRecord(rec)
		return t, nil
	}
	if err := store.SaveProfile(t.profile.record()); err != nil {
		return nil, err
	}
	logger.Info("profile created", "name", name)
	return t, nil
}

// NewMemory returns a tracker with a fresh profile and no persistence.
func NewMemory(name string, economy config.EconomyTuning) *Tracker {
	t, _ := Open(nil, name, economy, nil)
	return t
}

// Profile returns a copy of the current profile.
func (t *Tracker) Profile() Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile
}

// Economy returns the upgrade tables the tracker prices against.
func (t *Tracker) Economy() config.EconomyTuning { return t.economy }

// update applies fn under the lock and persists the result. Readers only
// wait on mu, never on the store.
func (t *Tracker) update(fn func(p *Profile)) {
	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	t.mu.Lock()
	fn(&t.profile)
	rec := t.profile.record()
	t.mu.Unlock()
	t.save(rec)
}

func (t *Tracker) save(rec storage.ProfileRecord) {
	if t.store == nil {
		return
	}
	if err := t.store.SaveProfile(rec); err != nil {
		t.logger.Error("cannot save profile", "name", rec.Name, "err", err)
	}
}

func (t *Tracker) PairValue() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.PairValue(t.economy)
}

func (t *Tracker) BaseTime() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.BaseTime(t.economy)
}

func (t *Tracker) RecordGamePlayed(victory bool, pairsFound int) {
	t.update(func(p *Profile) { p.RecordGame(victory, pairsFound) })
}

func (t *Tracker) AddCurrency(amount int) {
	t.update(func(p *Profile) { p.AddCurrency(amount) })
}

func (t *Tracker) MaxLevelCompleted() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.MaxLevelCompleted
}

// SetMaxLevelCompleted raises the progress marker and moves the current
// level past it. Lower values are ignored.
func (t *Tracker) SetMaxLevelCompleted(level int) {
	t.update(func(p *Profile) {
		if level <= p.MaxLevelCompleted {
			return
		}
		p.MaxLevelCompleted = level
		p.CurrentLevel = max(p.CurrentLevel, level+1)
	})
}

func (t *Tracker) RecordHintUsed() {
	t.update(func(p *Profile) { p.HintsUsed++ })
}

func (t *Tracker) RecordRewardedWatched() {
	t.update(func(p *Profile) { p.RewardedWatched++ })
}

func (t *Tracker) GamesPlayed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.GamesPlayed
}

func (t *Tracker) GamesSinceInterstitial() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.GamesSinceInterstitial
}

func (t *Tracker) RecordInterstitialShown() {
	t.update(func(p *Profile) { p.GamesSinceInterstitial = 0 })
}

// SetCurrentLevel records the level the player last picked.
func (t *Tracker) SetCurrentLevel(level int) {
	t.update(func(p *Profile) { p.CurrentLevel = max(1, level) })
}

// UpgradePair buys the next pair-value level.
func (t *Tracker) UpgradePair() error {
	return t.upgrade((*Profile).UpgradePair)
}

// UpgradeTime buys the next base-time level.
func (t *Tracker) UpgradeTime() error {
	return t.upgrade((*Profile).UpgradeTime)
}

func (t *Tracker) upgrade(buy func(*Profile, config.EconomyTuning) error) error {
	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	t.mu.Lock()
	if err := buy(&t.profile, t.economy); err != nil {
		t.mu.Unlock()
		return err
	}
	rec := t.profile.record()
	t.mu.Unlock()
	t.save(rec)
	return nil
}

// RecordOutcome writes the finished session to history together with the
// current profile. Sessions still in play are ignored.
func (t *Tracker) RecordOutcome(v session.View) {
	if !v.State.Over() || t.store == nil {
		return
	}
	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	t.mu.Lock()
	rec := t.profile.record()
	t.mu.Unlock()

	out := storage.SessionRecord{
		SessionID:  v.ID,
		Profile:    rec.Name,
		Level:      v.Level,
		Victory:    v.State == session.Victory,
		PairsFound: v.PairsFound,
		TotalPairs: v.TotalPairs,
		Reward:     v.Earned,
		TimeLeft:   v.TimeLeft,
		Doubled:    v.Doubled,
	}
	if _, err := t.store.SaveOutcome(rec, out); err != nil {
		t.logger.Error("cannot record session", "id", v.ID, "err", err)
	}
}
