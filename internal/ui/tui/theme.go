package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Active   lipgloss.Style
	Error    lipgloss.Style
	Field    lipgloss.Style
}

func DefaultTheme() Theme {
	card := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card:     card,
		Active:   card.BorderForeground(lipgloss.Color("63")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Field:    lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
	}
}
