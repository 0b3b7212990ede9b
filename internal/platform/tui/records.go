package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pairs/internal/storage"
)

const maxRecords = 100

// recordsTab selects what the records table shows.
type recordsTab int

const (
	tabRecent recordsTab = iota
	tabBest
	tabCount
)

func (t recordsTab) String() string {
	if t == tabBest {
		return "Best by level"
	}
	return "Recent games"
}

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "previous view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel shows a player's session history.
type RecordsModel struct {
	store    *storage.Store
	profile  string
	tab      recordsTab
	recent   []storage.SessionRecord
	best     []storage.LevelBest
	stats    *storage.HistoryStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RecordsKeyMap
	theme    Theme
	width    int
	height   int
	quitting bool
	back     bool
}

// NewRecordsModel creates the records screen for a player.
func NewRecordsModel(env *Env, player *Player, width, height int) RecordsModel {
	h := help.New()
	h.Width = width

	m := RecordsModel{
		store:   env.Store,
		profile: player.Name,
		keys:    DefaultRecordsKeyMap(),
		help:    h,
		theme:   env.Theme,
		width:   width,
		height:  height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *RecordsModel) load() {
	if m.store == nil {
		return
	}
	var err error
	if m.recent, err = m.store.RecentSessions(m.profile, maxRecords); err != nil {
		m.loadErr = err
		return
	}
	if m.best, err = m.store.BestRewards(m.profile); err != nil {
		m.loadErr = err
		return
	}
	m.stats, m.loadErr = m.store.Stats(m.profile)
}

// createTable creates a table with the columns of the current tab.
func (m *RecordsModel) createTable() table.Model {
	var columns []table.Column
	if m.tab == tabBest {
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Best", Width: 8},
			{Title: "Clears", Width: 8},
			{Title: "Attempts", Width: 9},
		}
	} else {
		columns = []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Level", Width: 6},
			{Title: "Result", Width: 8},
			{Title: "Pairs", Width: 7},
			{Title: "Reward", Width: 8},
			{Title: "Left", Width: 6},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RecordsModel) updateTableRows() {
	var rows []table.Row
	if m.tab == tabBest {
		rows = make([]table.Row, len(m.best))
		for i, b := range m.best {
			rows[i] = table.Row{
				fmt.Sprint(b.Level),
				fmt.Sprint(b.BestReward),
				fmt.Sprint(b.Clears),
				fmt.Sprint(b.Attempts),
			}
		}
	} else {
		rows = make([]table.Row, len(m.recent))
		for i, r := range m.recent {
			result := "Lost"
			if r.Victory {
				result = "Won"
			}
			if r.Doubled {
				result += " x2"
			}
			rows[i] = table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				fmt.Sprint(r.Level),
				result,
				fmt.Sprintf("%d/%d", r.PairsFound, r.TotalPairs),
				fmt.Sprint(r.Reward),
				fmt.Sprintf("%.0fs", r.TimeLeft),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *RecordsModel) switchTab(delta int) {
	m.tab = recordsTab((int(m.tab) + delta + int(tabCount)) % int(tabCount))
	m.table = m.createTable()
	m.updateTableRows()
}

// Init initializes the model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("RECORDS - %s - %s", m.profile, m.tab)
	b.WriteString(centerText(m.theme.MenuTitle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.Sessions > 0 {
		summary := fmt.Sprintf("Games %d  |  Won %d  |  Best %d  |  Avg %.1f  |  Total %d",
			m.stats.Sessions, m.stats.Victories, m.stats.BestReward, m.stats.AvgReward, m.stats.TotalReward)
		b.WriteString(centerText(m.theme.MenuDescription.Render(summary), m.width))
		b.WriteString("\n\n")
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanation of why it is empty.
func (m RecordsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("History is not saved in this session.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load records:\n" + m.loadErr.Error())
	case len(m.recent) == 0:
		return emptyStyle.Render("No games recorded yet.\nFinish a level to see it here!")
	}
	return m.table.View()
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user wants to go back to the menu.
func (m RecordsModel) WantsBack() bool {
	return m.back
}
