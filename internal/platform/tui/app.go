package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

type screen int

const (
	screenMenu screen = iota
	screenLevels
	screenShop
	screenRecords
	screenGame
)

// AppModel manages the full flow: menu -> level picker -> game -> menu.
// This is the top-level model for local play and SSH sessions.
type AppModel struct {
	env      *Env
	player   *Player
	config   core.RuntimeConfig
	screen   screen
	menu     MenuModel
	levels   LevelPickerModel
	shop     ShopModel
	records  RecordsModel
	game     GameModel
	quitting bool
}

// NewAppModel creates the app on the home menu.
func NewAppModel(env *Env, player *Player, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		env:    env,
		player: player,
		config: cfg,
		menu:   NewMenuModel(env, player, cfg.ScreenW, cfg.ScreenH),
	}
}

// NewAppModelAt creates the app with a level already running. Leaving the
// level returns to the home menu.
func NewAppModelAt(env *Env, player *Player, cfg core.RuntimeConfig, lvl int) AppModel {
	m := NewAppModel(env, player, cfg)
	m.screen = screenGame
	m.game = NewGameModel(env, player, cfg, lvl)
	return m
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update forwards messages to the current screen and switches screens
// when it is done.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenShop:
		return m.updateShop(msg)
	case screenRecords:
		return m.updateRecords(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.env, m.player, m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

func (m AppModel) toGame(lvl int) (tea.Model, tea.Cmd) {
	m.screen = screenGame
	m.game = NewGameModel(m.env, m.player, m.config, lvl)
	return m, m.game.Init()
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoiceContinue:
		lvl := m.player.Tracker.Profile().CurrentLevel
		if !m.env.Resolver.Valid(lvl) {
			lvl = m.env.Resolver.TotalLevels()
		}
		return m.toGame(lvl)
	case ChoiceLevels:
		m.screen = screenLevels
		m.levels = NewLevelPickerModel(m.env, m.player, m.config.ScreenW, m.config.ScreenH)
		return m, m.levels.Init()
	case ChoiceShop:
		m.screen = screenShop
		m.shop = NewShopModel(m.env, m.player, m.config.ScreenW, m.config.ScreenH)
		return m, m.shop.Init()
	case ChoiceRecords:
		m.screen = screenRecords
		m.records = NewRecordsModel(m.env, m.player, m.config.ScreenW, m.config.ScreenH)
		return m, m.records.Init()
	}
	return m, cmd
}

func (m AppModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	if levels, ok := next.(LevelPickerModel); ok {
		m.levels = levels
	}
	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.WantsBack():
		return m.toMenu()
	case m.levels.Selected() > 0:
		return m.toGame(m.levels.Selected())
	}
	return m, cmd
}

func (m AppModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.shop.Update(msg)
	if shop, ok := next.(ShopModel); ok {
		m.shop = shop
	}
	switch {
	case m.shop.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.shop.WantsBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	if records, ok := next.(RecordsModel); ok {
		m.records = records
	}
	switch {
	case m.records.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.records.WantsBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}
	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenShop:
		return m.shop.View()
	case screenRecords:
		return m.records.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// Screen reports the active screen name, for tests and logs.
func (m AppModel) Screen() string {
	switch m.screen {
	case screenLevels:
		return "levels"
	case screenShop:
		return "shop"
	case screenRecords:
		return "records"
	case screenGame:
		return "game"
	default:
		return "menu"
	}
}
