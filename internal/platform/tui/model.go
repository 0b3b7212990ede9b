package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

// Run starts the Bubble Tea program on the home menu.
func Run(env *Env, player *Player, cfg core.RuntimeConfig) error {
	return runProgram(NewAppModel(env, player, cfg))
}

// RunLevel starts the Bubble Tea program directly in a level.
func RunLevel(env *Env, player *Player, cfg core.RuntimeConfig, lvl int) error {
	return runProgram(NewAppModelAt(env, player, cfg, lvl))
}

func runProgram(model tea.Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
