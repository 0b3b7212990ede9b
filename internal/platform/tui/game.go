package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pairs/internal/board"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/reward"
	"github.com/vovakirdan/tui-pairs/internal/session"
)

const (
	adWatchSeconds = 1.5 // simulated rewarded ad length
	messageSeconds = 1.2
	timeBarWidth   = 20
)

// events turns session hooks into short on-screen messages.
type events struct {
	session.NopHooks
	message string
	ttl     float64
}

func (e *events) say(msg string) {
	e.message = msg
	e.ttl = messageSeconds
}

func (e *events) TileMatched(int, int)    { e.say("Match!") }
func (e *events) TileMismatched(int, int) { e.say("No match") }
func (e *events) Reshuffled()             { e.say("Shuffled!") }
func (e *events) HintFired([4]int)        { e.say("Hint: one pair is highlighted") }
func (e *events) TimeWarning()            { e.say("Hurry up!") }

func (e *events) Victory(b reward.Breakdown) {
	e.say(fmt.Sprintf("Cleared! +%d", b.Total))
}

func (e *events) Defeat(int) { e.say("Time's up") }

func (e *events) tick(dt float64) {
	if e.ttl <= 0 {
		return
	}
	e.ttl -= dt
	if e.ttl <= 0 {
		e.message = ""
	}
}

type navRequest int

const (
	navNone navRequest = iota
	navRetry
	navAdvance
	navHome
)

// navigator records the end-of-level choice until the next tick.
type navigator struct {
	req   navRequest
	level int
}

func (n *navigator) Retry(level int)   { n.req, n.level = navRetry, level }
func (n *navigator) Advance(level int) { n.req, n.level = navAdvance, level }
func (n *navigator) Home()             { n.req = navHome }

// GameModel drives one session at a time from the Bubble Tea loop.
type GameModel struct {
	env        *Env
	player     *Player
	config     core.RuntimeConfig
	sess       *session.Session
	events     *events
	nav        *navigator
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	cursor     int
	adWait     float64
	dealt      uint64 // boards dealt, offsets a fixed seed
	recorded   string // id of the last session written to history
	err        error
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model starting at the given level.
func NewGameModel(env *Env, player *Player, cfg core.RuntimeConfig, startLevel int) GameModel {
	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		env:        env,
		player:     player,
		config:     cfg,
		events:     &events{},
		nav:        &navigator{},
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
	m.start(startLevel)
	return m
}

// start replaces the running session with a fresh one for lvl.
func (m *GameModel) start(lvl int) {
	cfg := m.env.Resolver.Resolve(lvl)

	var src board.Source
	if m.config.Seed != 0 {
		src = board.NewSeededSource(uint64(m.config.Seed) + m.dealt)
	} else {
		src = board.NewCryptoSource()
	}
	m.dealt++

	sess, err := session.New(session.Options{
		Config:      cfg,
		Tuning:      m.env.Tuning,
		Progression: m.player.Tracker,
		Ads:         m.player.Ads,
		Navigator:   m.nav,
		Hooks:       m.events,
		Source:      src,
		Logger:      m.env.Logger,
	})
	if err != nil {
		m.env.Logger.Error("cannot start level", "level", cfg.Level, "err", err)
		m.err = err
		m.backToMenu = true
		return
	}

	m.sess = sess
	m.cursor = 0
	m.adWait = 0
	m.player.Tracker.SetCurrentLevel(cfg.Level)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues actions; they are applied on the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordOutcome()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick applies queued input, then advances the session.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.sess == nil || m.backToMenu || m.quitting {
		return m, nil
	}
	dt := m.config.TickDelta()

	for _, action := range m.inputFrame.Ordered() {
		m.apply(action)
	}
	m.inputFrame.Clear()

	m.followNav()
	if m.backToMenu {
		return m, nil
	}

	m.sess.Update(dt)
	m.events.tick(dt)
	m.deliverAds(dt)

	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) apply(action core.Action) {
	size := m.sess.Config().GridSize
	row, col := m.cursor/size, m.cursor%size

	switch action {
	case core.ActionUp:
		row = core.Wrap(row-1, size)
	case core.ActionDown:
		row = core.Wrap(row+1, size)
	case core.ActionLeft:
		col = core.Wrap(col-1, size)
	case core.ActionRight:
		col = core.Wrap(col+1, size)
	case core.ActionSelect:
		m.sess.SelectTile(m.cursor)
	case core.ActionHint:
		if !m.sess.RequestHint() && m.sess.State().InPlay() && m.sess.HintsOffered() {
			m.events.say("No hint available")
		}
	case core.ActionPause:
		m.sess.TogglePause()
	case core.ActionDouble:
		m.sess.RequestDoubleReward()
	case core.ActionExtraTime:
		m.sess.RequestExtraTime()
	case core.ActionRetry:
		m.sess.Retry()
	case core.ActionNext:
		m.sess.Advance()
	case core.ActionBack:
		m.sess.GoHome()
	}

	if m.sess.State().InPlay() {
		m.cursor = m.sess.Board().Pos(row, col)
	}
}

// followNav acts on a navigator request made during apply.
func (m *GameModel) followNav() {
	req, lvl := m.nav.req, m.nav.level
	m.nav.req = navNone

	switch req {
	case navRetry, navAdvance:
		m.recordOutcome()
		if !m.env.Resolver.Valid(lvl) {
			m.backToMenu = true
			return
		}
		m.start(lvl)
	case navHome:
		m.recordOutcome()
		m.backToMenu = true
	}
}

// deliverAds settles a rewarded ad once it has "played" long enough.
func (m *GameModel) deliverAds(dt float64) {
	if !m.player.Ads.Pending() {
		m.adWait = 0
		return
	}
	m.adWait += dt
	if m.adWait >= adWatchSeconds {
		m.adWait = 0
		if m.player.Ads.Deliver() == 0 {
			m.events.say("Ad not completed")
		}
	}
}

// recordOutcome writes a finished session to history once.
func (m *GameModel) recordOutcome() {
	if m.sess == nil || !m.sess.State().Over() || m.recorded == m.sess.ID() {
		return
	}
	m.player.Tracker.RecordOutcome(m.sess.Snapshot())
	m.recorded = m.sess.ID()
}

// View renders the HUD, the board and any overlay.
func (m GameModel) View() string {
	if m.quitting || m.sess == nil {
		return ""
	}
	v := m.sess.Snapshot()
	theme := m.env.Theme

	parts := []string{m.renderHUD(v), ""}
	if v.State == session.Paused {
		parts = append(parts, m.renderOverlay(v))
	} else {
		parts = append(parts, m.renderBoard(v))
		if v.State.Over() {
			parts = append(parts, "", m.renderOverlay(v))
		}
	}
	parts = append(parts, "", theme.HUDValue.Render(m.events.message), theme.HUDControls.Render(m.help.View(m.keyMapper.Keys)))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, content)
}

func (m GameModel) renderHUD(v session.View) string {
	theme := m.env.Theme

	title := theme.HUDTitle.Render(fmt.Sprintf("LEVEL %d", v.Level))
	tier := theme.MenuDescription.Render(v.Tier.String())

	filled := 0
	if v.MaxTime > 0 {
		filled = int(core.ClampF(v.TimeLeft/v.MaxTime, 0, 1) * timeBarWidth)
	}
	barStyle := theme.TimeBarFull
	timeStyle := theme.HUDValue
	if v.Warning {
		barStyle = theme.TimeBarLow
		timeStyle = theme.HUDWarning
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) +
		theme.TileBack.Render(strings.Repeat("░", timeBarWidth-filled))
	clock := timeStyle.Render(fmt.Sprintf("%5.1fs", v.TimeLeft))

	stats := []string{
		fmt.Sprintf("Pairs %d/%d", v.PairsFound, v.TotalPairs),
		fmt.Sprintf("+%d", v.Running),
		fmt.Sprintf("Coins %d", m.player.Tracker.Profile().Currency),
	}
	if v.HintsOffered {
		stats = append(stats, fmt.Sprintf("Hints %d", v.HintsLeft))
	}
	if v.Shuffle {
		stats = append(stats, fmt.Sprintf("Shuffle in %d", v.Remaining))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		title, "  ", tier, "   ", bar, " ", clock, "   ",
		theme.HUDValue.Render(strings.Join(stats, "  ")),
	)
}

func (m GameModel) renderBoard(v session.View) string {
	theme := m.env.Theme
	cfg := m.sess.Config()

	// Multi-grid levels draw the columns as separate blocks.
	block := v.GridSize
	if cfg.MultiGridEnabled && cfg.MultiGridCount > 1 {
		block = (v.GridSize + cfg.MultiGridCount - 1) / cfg.MultiGridCount
	}

	var b strings.Builder
	for row := range v.GridSize {
		if row > 0 {
			b.WriteString("\n")
		}
		for col := range v.GridSize {
			if col > 0 {
				b.WriteString(" ")
				if col%block == 0 {
					b.WriteString("  ")
				}
			}
			pos := row*v.GridSize + col
			b.WriteString(m.renderTile(v.Tiles[pos], pos == m.cursor && v.State.InPlay(), v.Fade, theme))
		}
	}
	return b.String()
}

func (m GameModel) renderTile(t session.TileView, cursor, fade bool, theme Theme) string {
	var cell string
	var style lipgloss.Style

	switch {
	case t.Matched && fade:
		cell, style = "   ", theme.TileFaded
	case t.Matched:
		glyph, _ := theme.face(t.CharacterID)
		cell, style = " "+glyph+" ", theme.TileMatched
	case t.FaceUp():
		glyph, face := theme.face(t.CharacterID)
		cell, style = " "+glyph+" ", face
	case t.Animating:
		cell, style = "▒▒▒", theme.TileFlip
	default:
		cell, style = "░░░", theme.TileBack
	}

	if cursor {
		style = style.Inherit(theme.Cursor)
	}
	if t.Highlight > 0 {
		style = style.Inherit(theme.TileHint)
	}
	return style.Render(cell)
}

func (m GameModel) renderOverlay(v session.View) string {
	theme := m.env.Theme
	var lines []string

	switch v.State {
	case session.Paused:
		lines = append(lines,
			theme.OverlayTitle.Render("PAUSED"),
			"",
			"[p] resume   [r] restart   [b] levels",
		)

	case session.Victory:
		b := v.Breakdown
		lines = append(lines,
			theme.OverlayTitle.Render("LEVEL CLEARED"),
			"",
			fmt.Sprintf("Pairs       %d x %d = %d", b.PairsFound, b.PairValue, b.PairsReward),
			fmt.Sprintf("Time bonus  +%d", b.TimeBonus),
			fmt.Sprintf("Multiplier  x%.1f (+%d)", b.Multiplier, b.MultiplierBonus),
			fmt.Sprintf("Total       %d", b.Total),
		)
		if v.Doubled {
			lines = append(lines, fmt.Sprintf("Doubled     +%d", v.DoubledExtra))
		}
		lines = append(lines, "")
		switch {
		case v.AdPending:
			lines = append(lines, "Watching ad...")
		case v.CanDouble:
			lines = append(lines, "[x] double reward")
		}
		lines = append(lines, "[n] next   [r] retry   [b] levels")

	case session.Defeat:
		lines = append(lines,
			theme.OverlayTitle.Render("TIME'S UP"),
			"",
			fmt.Sprintf("Pairs found %d/%d", v.PairsFound, v.TotalPairs),
			fmt.Sprintf("Earned      %d", v.Earned),
			"",
		)
		switch {
		case v.AdPending:
			lines = append(lines, "Watching ad...")
		case v.CanExtraTime:
			lines = append(lines, fmt.Sprintf("[t] +%d seconds", m.env.Tuning.Session.ExtraTimeSeconds))
		}
		lines = append(lines, "[r] retry   [b] levels")
	}

	return theme.OverlayBorder.Render(theme.OverlayText.Render(strings.Join(lines, "\n")))
}

// Session returns the running session.
func (m GameModel) Session() *session.Session {
	return m.sess
}

// Cursor returns the slot under the cursor.
func (m GameModel) Cursor() int {
	return m.cursor
}

// Err returns the error that ended the game early, if any.
func (m GameModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
