package tui

import "github.com/charmbracelet/lipgloss"

const (
	primaryColor = "#89b4fa"
	successColor = "#a6e3a1"
	warningColor = "#f9e2af"
	errorColor   = "#f38ba8"
	textColor    = "#cdd6f4"
	mutedColor   = "#6c7086"
	borderColor  = "#45475a"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true).
			MarginBottom(1)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textColor))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(mutedColor))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor)).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	seedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(successColor)).
			Foreground(lipgloss.Color(successColor)).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color(borderColor)).
			MarginTop(1)
)
