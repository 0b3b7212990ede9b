package session

import (
	"github.com/vovakirdan/tui-pairs/internal/level"
	"github.com/vovakirdan/tui-pairs/internal/reward"
)

// TileView is the read-only state of one slot.
type TileView struct {
	Slot        int
	Index       int
	CharacterID int
	Revealed    bool
	Matched     bool
	Animating   bool
	Progress    float64 // 0 back, 1 front
	Highlight   float64 // remaining hint seconds
	Intensity   float64
}

// FaceUp reports whether the symbol should be drawn.
func (t TileView) FaceUp() bool {
	return t.Matched || t.Progress >= 0.5
}

// View is a snapshot of a session for front ends.
type View struct {
	ID        string
	Level     int
	Tier      level.Tier
	State     State
	GridSize  int
	TimeLeft  float64
	MaxTime   float64
	Warning   bool
	Fade      bool
	Shuffle   bool
	Remaining int // flips until the next possible reshuffle

	PairsFound int
	TotalPairs int
	PairValue  int
	Running    int
	Earned     int

	HintsLeft    int
	HintsOffered bool

	Breakdown     reward.Breakdown
	Doubled       bool
	DoubledExtra  int
	CanDouble     bool
	CanExtraTime  bool
	ExtraTimeUsed bool
	AdPending     bool

	Tiles []TileView
}

// Snapshot copies the current state into a View.
func (s *Session) Snapshot() View {
	v := View{
		ID:         s.id,
		Level:      s.cfg.Level,
		Tier:       s.cfg.Tier,
		State:      s.state,
		GridSize:   s.cfg.GridSize,
		TimeLeft:   s.timeLeft,
		MaxTime:    s.maxTime,
		Warning:    s.warned,
		Fade:       s.cfg.FadeEnabled,
		Shuffle:    s.cfg.ShuffleEnabled,
		PairsFound: s.pairsFound,
		TotalPairs: s.board.TotalPairs(),
		PairValue:  s.pairValue,
		Running:    reward.RunningTotal(s.pairValue, s.pairsFound),
		Earned:     s.credited,

		HintsLeft:    s.hintsLeft,
		HintsOffered: s.HintsOffered(),

		Breakdown:     s.breakdown,
		Doubled:       s.doubled,
		DoubledExtra:  s.doubledExtra,
		CanDouble:     s.CanDoubleReward(),
		CanExtraTime:  s.CanExtraTime(),
		ExtraTimeUsed: s.extraTimeUsed,
		AdPending:     s.adInFlight,
	}
	if s.cfg.ShuffleEnabled {
		v.Remaining = max(0, s.cfg.ShuffleInterval-s.flipsSince)
	}

	tiles := s.board.Tiles()
	v.Tiles = make([]TileView, len(tiles))
	for pos, t := range tiles {
		hl, in := t.Highlight()
		v.Tiles[pos] = TileView{
			Slot:        pos,
			Index:       t.Index(),
			CharacterID: t.CharacterID(),
			Revealed:    t.Revealed(),
			Matched:     t.Matched(),
			Animating:   t.Animating(),
			Progress:    t.FlipProgress(),
			Highlight:   hl,
			Intensity:   in,
		}
	}
	return v
}
