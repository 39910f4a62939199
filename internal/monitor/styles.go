package monitor

import (
	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette.
const (
	ColorBorder = lipgloss.Color("#2A2A4A") // Purple-tinted border
	ColorTrace  = lipgloss.Color("#00FFFF") // Neon cyan trace line

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorHealthy  = lipgloss.Color("#39FF14") // Connected
	ColorWarning  = lipgloss.Color("#FFAA00") // Garbage on the line
	ColorCritical = lipgloss.Color("#FF0055") // Disconnected / read errors
)

// Base styles for the dashboard.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTrace).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ChartStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	StatusConnectedStyle = lipgloss.NewStyle().Foreground(ColorHealthy)
	StatusGarbageStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
	StatusOfflineStyle   = lipgloss.NewStyle().Foreground(ColorCritical)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)
)
