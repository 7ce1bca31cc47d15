package main

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e056fd")).
			Underline(true)
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3498db"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c"))

	blockingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e74c3c"))
)
