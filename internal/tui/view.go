package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/glo0ml34f/talon/internal/console"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.promptView()+" "+m.input.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.styles.Frame.Render(body),
		m.footerView(),
	)
}

func (m Model) headerView() string {
	return strings.Join([]string{
		m.banner,
		m.styles.Welcome.Render("Welcome to Talon Algorithm Terminal Interface"),
		m.styles.Info.Render("Type /help to see available commands"),
		m.styles.Warning.Render("Warning: This system cannot be terminated through conventional means"),
	}, "\n")
}

func (m Model) footerView() string {
	tokens := m.session.Registry().Tokens()
	return strings.Join([]string{
		m.styles.Hint.Render("Hint: Use ↑/↓ arrow keys to navigate command history"),
		m.styles.Hint.Render("Available commands: " + strings.Join(tokens, ", ")),
	}, "\n")
}

// promptView is the live input prefix; its clock is the render time.
func (m Model) promptView() string {
	return m.styles.Timestamp.Render("["+console.FormatTimestamp(time.Now(), m.timeLayout)+"]") +
		" " + m.styles.Prompt.Render(m.prompt)
}

func (m Model) transcriptView() string {
	var b strings.Builder
	for i, e := range m.session.Transcript() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.entryView(e))
		b.WriteString("\n")
	}
	return b.String()
}

// entryView styles the shared transcript layout.
func (m Model) entryView(e console.TranscriptEntry) string {
	lines := console.Render(e, m.prompt)
	lines[0] = m.styles.Command.Render(lines[0])
	for i := 1; i < len(lines); i++ {
		lines[i] = m.styles.Output.Render(lines[i])
	}
	return strings.Join(lines, "\n")
}
