package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#C89A3A")
	colorFg      = lipgloss.Color("#F0F0F0")
	colorMuted   = lipgloss.Color("#8C8C8C")
	colorSubtle  = lipgloss.Color("#4A4A4A")
	colorShipped = lipgloss.Color("#7FB77E")
	colorError   = lipgloss.Color("#FF4D4F")
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(colorAccent)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(colorSubtle)
	panelStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(colorSubtle)
	titleStyle   = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	taskStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	shippedStyle = lipgloss.NewStyle().Foreground(colorShipped).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	footerStyle  = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
)
