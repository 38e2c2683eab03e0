package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#2563EB") // blue
	colorSuccess = lipgloss.Color("#16A34A") // green
	colorWarning = lipgloss.Color("#D97706") // amber
	colorError   = lipgloss.Color("#DC2626") // red
	colorMuted   = lipgloss.Color("#6B7280") // gray
	colorText    = lipgloss.Color("#E5E7EB") // light gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	statsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(34)

	statLabelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	statValueStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)
