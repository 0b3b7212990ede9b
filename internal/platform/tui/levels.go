package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/level"
)

// LevelPickerModel lists every level with its ruleset. Levels past the
// first uncleared one are locked.
type LevelPickerModel struct {
	levels       []level.Config
	unlocked     int // highest playable level
	cursor       int
	scrollOffset int
	width        int
	height       int
	theme        Theme
	keyMapper    *KeyMapper
	selected     int
	quitting     bool
	back         bool
}

// NewLevelPickerModel creates a level picker with the cursor on the
// player's current level.
func NewLevelPickerModel(env *Env, player *Player, width, height int) LevelPickerModel {
	p := player.Tracker.Profile()
	levels := env.Resolver.All()
	unlocked := min(len(levels), p.MaxLevelCompleted+1)

	m := LevelPickerModel{
		levels:    levels,
		unlocked:  unlocked,
		cursor:    max(0, min(p.CurrentLevel, unlocked)-1),
		width:     width,
		height:    height,
		theme:     env.Theme,
		keyMapper: NewKeyMapper(),
	}
	m.updateScroll()
	return m
}

// Init initializes the model.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if lvl := m.levels[m.cursor].Level; lvl <= m.unlocked {
			m.selected = lvl
		}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

func (m LevelPickerModel) visibleItems() int {
	return max(3, m.height-10) // header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelPickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level list.
func (m LevelPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("S E L E C T   L E V E L"), m.width))
	b.WriteString("\n\n")

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
	}
	b.WriteString("\n")

	end := min(len(m.levels), m.scrollOffset+m.visibleItems())
	for i := m.scrollOffset; i < end; i++ {
		cfg := m.levels[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		switch {
		case i == m.cursor:
			cursor = "> "
			style = m.theme.MenuItemActive
		case cfg.Level > m.unlocked:
			style = m.theme.MenuItemLocked
		}
		b.WriteString(centerText(style.Render(cursor+describeLevel(cfg, cfg.Level > m.unlocked)), m.width))
		b.WriteString("\n")
	}

	if end < len(m.levels) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
	}
	b.WriteString("\n\n")

	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// describeLevel is one picker line: number, tier, grid and modifiers.
func describeLevel(cfg level.Config, locked bool) string {
	line := fmt.Sprintf("%3d  %-6s  %dx%d  +%2ds  x%.1f", cfg.Level, cfg.Tier, cfg.GridSize, cfg.GridSize,
		cfg.TimeBonusSeconds, cfg.RewardMultiplier)

	var mods []string
	if cfg.ShuffleEnabled {
		mods = append(mods, fmt.Sprintf("shuffle/%d", cfg.ShuffleInterval))
	}
	if cfg.MultiGridEnabled {
		mods = append(mods, fmt.Sprintf("grids/%d", cfg.MultiGridCount))
	}
	if cfg.FadeEnabled {
		mods = append(mods, "fade")
	}
	if len(mods) > 0 {
		line += "  " + strings.Join(mods, " ")
	}
	if locked {
		line += "  (locked)"
	}
	return line
}

// Selected returns the chosen level, or 0 while browsing.
func (m LevelPickerModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelPickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelPickerModel) WantsBack() bool {
	return m.back
}
