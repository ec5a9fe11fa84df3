package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	strip    lipgloss.Style
	subject  lipgloss.Style
	meta     lipgloss.Style
	inserted lipgloss.Style
	deleted  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		strip:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}),
		subject:  lipgloss.NewStyle().Bold(true),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9B9B9B"}),
		inserted: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		deleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
