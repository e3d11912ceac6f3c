package repl

import (
	"sort"
	"strings"

	"github.com/glo0ml34f/talon/internal/console"
)

// completer offers registry tokens for the word being typed. Resolution
// itself stays exact; this only saves keystrokes.
type completer struct {
	reg *console.Registry
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	input := strings.TrimLeft(string(line[:pos]), " \t")
	if strings.ContainsAny(input, " \t") {
		return nil, 0
	}
	prefix := strings.ToLower(input)
	var suggestions []string
	for _, tok := range c.reg.Tokens() {
		if strings.HasPrefix(tok, prefix) {
			suggestions = append(suggestions, tok[len(prefix):])
		}
	}
	sort.Strings(suggestions)
	out := make([][]rune, len(suggestions))
	for i, s := range suggestions {
		out[i] = []rune(s)
	}
	return out, len([]rune(input))
}
