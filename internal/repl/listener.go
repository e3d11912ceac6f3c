package repl

import (
	"github.com/chzyer/readline"

	"github.com/glo0ml34f/talon/internal/console"
)

// historyListener routes the editor's previous/next keys to the session's
// recall operations. The editor's own history is disabled.
type historyListener struct {
	session *console.Session
}

func (h *historyListener) OnChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	var (
		text string
		ok   bool
	)
	switch key {
	case readline.CharPrev:
		text, ok = h.session.RecallPrevious()
	case readline.CharNext:
		text, ok = h.session.RecallNext()
	default:
		return nil, 0, false
	}
	if !ok {
		return nil, 0, false
	}
	r := []rune(text)
	return r, len(r), true
}
