// Package tui is the full-screen front end: a bubbletea program whose
// Enter, Up and Down keys drive a console session and whose viewport shows
// the transcript.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/glo0ml34f/talon/internal/console"
)

const bannerMarkdown = `# > TALON ALGORITHM

**SOLANA PROJECT** · Interactive Terminal Interface
`

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures the model.
type Options struct {
	Prompt     string
	TimeLayout string
	Log        *zap.Logger
}

// Model is the bubbletea model for the console.
type Model struct {
	session    *console.Session
	input      textinput.Model
	viewport   viewport.Model
	styles     Styles
	prompt     string
	timeLayout string
	banner     string
	bannerW    int
	log        *zap.Logger
	width      int
	height     int
	quitting   bool
}

// New creates a model driving s.
func New(s *console.Session, opts Options) Model {
	if opts.Prompt == "" {
		opts.Prompt = console.DefaultPrompt
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Type a command..."
	ti.Focus()

	m := Model{
		session:    s,
		input:      ti,
		viewport:   viewport.New(defaultWidth, defaultHeight),
		styles:     DefaultStyles(),
		prompt:     opts.Prompt,
		timeLayout: opts.TimeLayout,
		log:        opts.Log,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func renderBanner(width int, log *zap.Logger) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug("banner renderer unavailable", zap.Error(err))
		return bannerMarkdown
	}
	out, err := r.Render(bannerMarkdown)
	if err != nil {
		log.Debug("banner render failed", zap.Error(err))
		return bannerMarkdown
	}
	return strings.Trim(out, "\n")
}
