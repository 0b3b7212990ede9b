package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/progress"
)

// ShopModel sells the pair-value and base-time upgrades.
type ShopModel struct {
	player    *Player
	cursor    int
	width     int
	height    int
	theme     Theme
	keyMapper *KeyMapper
	message   string
	quitting  bool
	back      bool
}

// NewShopModel creates the upgrade shop.
func NewShopModel(env *Env, player *Player, width, height int) ShopModel {
	return ShopModel{
		player:    player,
		width:     width,
		height:    height,
		theme:     env.Theme,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp, MenuActionDown:
			m.cursor = 1 - m.cursor
		case MenuActionSelect:
			m.buy()
		case MenuActionBack:
			m.back = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *ShopModel) buy() {
	var err error
	name := "Pair value"
	if m.cursor == 0 {
		err = m.player.Tracker.UpgradePair()
	} else {
		name = "Base time"
		err = m.player.Tracker.UpgradeTime()
	}

	switch {
	case err == nil:
		m.message = name + " upgraded"
	case errors.Is(err, progress.ErrMaxLevel):
		m.message = name + " is maxed out"
	case errors.Is(err, progress.ErrInsufficientFunds):
		m.message = "Not enough coins"
	default:
		m.message = err.Error()
	}
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting {
		return ""
	}

	p := m.player.Tracker.Profile()
	e := m.player.Tracker.Economy()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("U P G R A D E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render(fmt.Sprintf("Coins: %d", p.Currency)), m.width))
	b.WriteString("\n\n")

	rows := []string{
		upgradeLine("Pair value", fmt.Sprint(p.PairValue(e)), p.PairLevel, e.MaxPairLevel(), p.NextPairCost(e), nextValue(e.PairValues, p.PairLevel, "")),
		upgradeLine("Base time ", fmt.Sprintf("%ds", p.BaseTime(e)), p.TimeLevel, e.MaxTimeLevel(), p.NextTimeCost(e), nextValue(e.TimeValues, p.TimeLevel, "s")),
	}
	affordable := []bool{p.CanUpgradePair(e), p.CanUpgradeTime(e)}

	for i, row := range rows {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if !affordable[i] {
			style = m.theme.MenuItemLocked
		}
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+row), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.OverlayTitle.Render(m.message), m.width))
	b.WriteString("\n\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Buy  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func upgradeLine(name, current string, lvl, maxLvl, cost int, next string) string {
	if cost < 0 {
		return fmt.Sprintf("%s  %-5s  lvl %d/%d  MAX", name, current, lvl, maxLvl)
	}
	return fmt.Sprintf("%s  %-5s  lvl %d/%d  -> %-5s  %d coins", name, current, lvl, maxLvl, next, cost)
}

func nextValue(table []int, lvl int, unit string) string {
	if lvl+1 >= len(table) {
		return ""
	}
	return fmt.Sprintf("%d%s", table[lvl+1], unit)
}

// IsQuitting returns true if user wants to quit.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ShopModel) WantsBack() bool {
	return m.back
}
