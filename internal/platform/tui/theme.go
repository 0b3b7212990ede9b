package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// symbols maps character IDs to glyphs. IDs wrap if the catalogue grows.
const symbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@#$%&*+=?!<>~^"

// Theme contains all configurable visual styles.
type Theme struct {
	// Tile faces cycle through these colors by character ID
	Faces []lipgloss.Style

	TileBack    lipgloss.Style
	TileFlip    lipgloss.Style // mid-flip, edge on
	TileMatched lipgloss.Style
	TileFaded   lipgloss.Style // matched tile on a fade level
	TileHint    lipgloss.Style
	Cursor      lipgloss.Style

	// HUD styles
	HUDTitle    lipgloss.Style
	HUDValue    lipgloss.Style
	HUDWarning  lipgloss.Style
	HUDControls lipgloss.Style
	TimeBarFull lipgloss.Style
	TimeBarLow  lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	faces := make([]lipgloss.Style, 0, 8)
	for _, c := range []string{"205", "51", "46", "226", "135", "208", "39", "196"} {
		faces = append(faces, lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true))
	}

	return Theme{
		Faces: faces,

		TileBack:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		TileFlip:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		TileMatched: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		TileFaded:   lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		TileHint:    lipgloss.NewStyle().Background(lipgloss.Color("58")),
		Cursor:      lipgloss.NewStyle().Background(lipgloss.Color("57")),

		HUDTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		HUDControls: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		TimeBarFull: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		TimeBarLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("255")).
			Padding(1, 3),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	for i := range theme.Faces {
		theme.Faces[i] = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	}
	theme.TileHint = lipgloss.NewStyle().Reverse(true)
	theme.Cursor = lipgloss.NewStyle().Underline(true)
	theme.TimeBarFull = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.TimeBarLow = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	return theme
}

// face returns the glyph and style for a character ID.
func (t Theme) face(id int) (string, lipgloss.Style) {
	glyph := string(symbols[id%len(symbols)])
	if len(t.Faces) == 0 {
		return glyph, lipgloss.NewStyle()
	}
	return glyph, t.Faces[id%len(t.Faces)]
}
