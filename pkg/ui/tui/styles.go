package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Cyberpunk color palette
	neonCyan    = lipgloss.Color("#00FFFF")
	neonMagenta = lipgloss.Color("#FF00FF")
	neonGreen   = lipgloss.Color("#39FF14")
	neonYellow  = lipgloss.Color("#FFFF00")
	neonOrange  = lipgloss.Color("#FF6700")
	neonRed     = lipgloss.Color("#FF0000")
	darkBg      = lipgloss.Color("#0A0E27")
	dimWhite    = lipgloss.Color("#B0B0B0")
	dimGray     = lipgloss.Color("#444444")

	// Base styles
	baseStyle = lipgloss.NewStyle().
			Background(darkBg).
			Foreground(dimWhite)

	// Logo style
	logoStyle = lipgloss.NewStyle().
			Foreground(neonCyan).
			Bold(true).
			Align(lipgloss.Center)

	// Cell border styles, one per lifecycle phase
	cellUnloadedStyle = lipgloss.NewStyle().
				Foreground(dimGray)

	cellLoadingStyle = lipgloss.NewStyle().
				Foreground(neonYellow)

	cellReadyStyle = lipgloss.NewStyle().
			Foreground(dimWhite)

	cellPlayingStyle = lipgloss.NewStyle().
				Foreground(neonGreen).
				Bold(true)

	cellPausedStyle = lipgloss.NewStyle().
			Foreground(neonOrange)

	cellFailedStyle = lipgloss.NewStyle().
			Foreground(neonRed).
			Bold(true)

	cellSelectedStyle = lipgloss.NewStyle().
				Foreground(neonMagenta).
				Bold(true)

	cellTitleStyle = lipgloss.NewStyle().
			Foreground(dimWhite)

	// Status bar styles
	statusBarStyle = lipgloss.NewStyle().
			Foreground(darkBg).
			Background(neonCyan).
			Bold(true).
			Padding(0, 1)

	statusInfoStyle = lipgloss.NewStyle().
			Foreground(dimWhite).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(neonRed).
			Bold(true)

	// Help style
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0, 0, 2)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(neonCyan).
			Bold(true)
)

// phaseStyle maps a lifecycle phase name to its cell style.
func phaseStyle(phase string) lipgloss.Style {
	switch phase {
	case "loading":
		return cellLoadingStyle
	case "ready":
		return cellReadyStyle
	case "playing":
		return cellPlayingStyle
	case "paused":
		return cellPausedStyle
	case "failed":
		return cellFailedStyle
	default:
		return cellUnloadedStyle
	}
}

// phaseGlyph is the indicator drawn inside a cell.
func phaseGlyph(phase string) string {
	switch phase {
	case "playing":
		return "▶"
	case "paused":
		return "⏸"
	case "failed":
		return "✖"
	case "ready":
		return "■"
	default:
		return "·"
	}
}
