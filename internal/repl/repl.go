// Package repl is the line-mode front end: a readline editor whose Enter,
// Up and Down keys drive a console session, and whose transcript is
// streamed to a writer.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/glo0ml34f/talon/internal/console"
)

const (
	clearSeq  = "\033[H\033[2J"
	rewindSeq = "\033[1A\r\033[K"
)

const banner = "\033[1;33m" + `
 > TALON
 > ALGORITHM
` + "\033[0m" + `   SOLANA PROJECT - Interactive Terminal Interface
`

// Options configures a REPL.
type Options struct {
	Prompt string
	Stdin  io.ReadCloser
	Stdout io.Writer
	Log    *zap.Logger
	// Rewind overwrites the echoed input line with the timestamped
	// transcript header. Only meaningful on a terminal.
	Rewind bool
}

// REPL connects a session to a line editor.
type REPL struct {
	session *console.Session
	prompt  string
	out     io.Writer
	log     *zap.Logger
	rewind  bool
	stdin   io.ReadCloser
}

// New creates a REPL for s.
func New(s *console.Session, opts Options) *REPL {
	if opts.Prompt == "" {
		opts.Prompt = console.DefaultPrompt
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &REPL{
		session: s,
		prompt:  opts.Prompt,
		out:     opts.Stdout,
		log:     opts.Log,
		rewind:  opts.Rewind,
		stdin:   opts.Stdin,
	}
}

// Welcome prints the greeting shown when the console starts.
func (r *REPL) Welcome() {
	fmt.Fprint(r.out, banner)
	fmt.Fprintln(r.out, "Welcome to Talon Algorithm Terminal Interface")
	fmt.Fprintln(r.out, "Type /help to see available commands")
	fmt.Fprintln(r.out, "Warning: This system cannot be terminated through conventional means")
	fmt.Fprintln(r.out, "Hint: Use ↑/↓ arrow keys to navigate command history")
	fmt.Fprintln(r.out)
}

// Handle submits one line and writes what the session recorded.
func (r *REPL) Handle(line string) {
	out := r.session.Submit(line)
	switch {
	case out.Cleared:
		fmt.Fprint(r.out, clearSeq)
	case out.Appended:
		if r.rewind {
			fmt.Fprint(r.out, rewindSeq)
		}
		for _, l := range console.Render(out.Entry, r.prompt) {
			fmt.Fprintln(r.out, l)
		}
	}
}

// Run reads lines until EOF, an interrupt on an empty line, or ctx is done.
// The /exit command never ends the loop.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 r.prompt + " ",
		AutoComplete:           &completer{reg: r.session.Registry()},
		Listener:               &historyListener{session: r.session},
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		Stdin:                  r.stdin,
		Stdout:                 r.out,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	stop := context.AfterFunc(ctx, func() { _ = rl.Close() })
	defer stop()

	r.Welcome()
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}
		r.Handle(line)
		r.log.Debug("line handled", zap.Int("transcript", len(r.session.Transcript())))
	}
}
