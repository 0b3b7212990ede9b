package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/ads"
	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/level"
	"github.com/vovakirdan/tui-pairs/internal/progress"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// Env is shared by every player of one process: the local terminal or all
// SSH connections of a server.
type Env struct {
	Tuning   config.Tuning
	Resolver *level.Resolver
	Store    *storage.Store // nil runs without persistence
	Logger   *log.Logger
	Theme    Theme
	AdFill   int // percentage of rewarded ads that pay out
}

// NewEnv builds an environment with the default theme and ad fill rate.
func NewEnv(tuning config.Tuning, resolver *level.Resolver, store *storage.Store, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Env{
		Tuning:   tuning,
		Resolver: resolver,
		Store:    store,
		Logger:   logger,
		Theme:    DefaultTheme(),
		AdFill:   ads.DefaultFillRate,
	}
}

// Player is one person at the keyboard: their profile and ad network.
type Player struct {
	Name    string
	Tracker *progress.Tracker
	Ads     *ads.Simulated
}

// NewPlayer loads (or creates) the named profile.
func (e *Env) NewPlayer(name string) (*Player, error) {
	var tracker *progress.Tracker
	if e.Store != nil {
		t, err := progress.Open(e.Store, name, e.Tuning.Economy, e.Logger)
		if err != nil {
			return nil, err
		}
		tracker = t
	} else {
		tracker = progress.NewMemory(name, e.Tuning.Economy)
	}

	return &Player{
		Name:    name,
		Tracker: tracker,
		Ads:     ads.NewSimulated(ads.Options{FillRate: e.AdFill, Logger: e.Logger}),
	}, nil
}
