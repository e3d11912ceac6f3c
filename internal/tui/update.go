package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Enter submits, Up and Down recall, and every
// other key goes to the input line.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			m.submit()
			return m, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if text, ok := m.session.RecallPrevious(); ok {
				m.setInput(text)
			}
			return m, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if text, ok := m.session.RecallNext(); ok {
				m.setInput(text)
			}
			return m, nil

		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	line := m.input.Value()
	out := m.session.Submit(line)
	m.input.Reset()
	m.log.Debug("submitted",
		zap.Bool("appended", out.Appended),
		zap.Bool("cleared", out.Cleared))
	m.refresh()
}

func (m *Model) setInput(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

// resize lays out the viewport between the header and the input/footer.
func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width, m.height = width, height
	if width != m.bannerW {
		m.banner = renderBanner(width, m.log)
		m.bannerW = width
	}

	frameW, frameH := m.styles.Frame.GetFrameSize()
	vpHeight := height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView()) - frameH - 1
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := width - frameW
	if vpWidth < 1 {
		vpWidth = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
	m.input.Width = vpWidth - lipgloss.Width(m.promptView()) - 1
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.transcriptView())
	m.viewport.GotoBottom()
}
