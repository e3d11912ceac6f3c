package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups every style the console view uses.
type Styles struct {
	Timestamp lipgloss.Style
	Prompt    lipgloss.Style
	Command   lipgloss.Style
	Output    lipgloss.Style
	Welcome   lipgloss.Style
	Info      lipgloss.Style
	Warning   lipgloss.Style
	Hint      lipgloss.Style
	Frame     lipgloss.Style
}

// DefaultStyles mirrors the black terminal with green prompts and yellow
// accents.
func DefaultStyles() Styles {
	return Styles{
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		Command:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
		Output:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
		Welcome:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#facc15")),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1),
	}
}
