package console

import (
	"fmt"
	"strings"
	"unicode"
)

// Registry maps normalized command tokens to their specs. It cannot be
// changed once built.
type Registry struct {
	specs []CommandSpec
	index map[string]int
}

// Normalize trims surrounding whitespace, including byte order marks, and
// lower-cases the input.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimFunc(raw, isTrimmable))
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// NewRegistry builds a registry from specs in the given order.
func NewRegistry(specs ...CommandSpec) (*Registry, error) {
	r := &Registry{
		specs: make([]CommandSpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		key := Normalize(s.Token)
		if key == "" {
			return nil, fmt.Errorf("command %q: empty token", s.Token)
		}
		if s.Produce == nil {
			return nil, fmt.Errorf("command %s: no producer", key)
		}
		if _, ok := r.index[key]; ok {
			return nil, fmt.Errorf("command %s: %w", key, ErrDuplicateToken)
		}
		s.Token = key
		r.index[key] = len(r.specs)
		r.specs = append(r.specs, s)
	}
	return r, nil
}

// Resolve looks up the normalized input. There is no prefix or fuzzy
// matching; the whole normalized string is the key.
func (r *Registry) Resolve(raw string) (CommandSpec, bool) {
	if r == nil {
		return CommandSpec{}, false
	}
	i, ok := r.index[Normalize(raw)]
	if !ok {
		return CommandSpec{}, false
	}
	return r.specs[i], true
}

// Commands returns the specs in registration order.
func (r *Registry) Commands() []CommandSpec {
	if r == nil {
		return nil
	}
	out := make([]CommandSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Tokens returns the registered tokens in registration order.
func (r *Registry) Tokens() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.specs))
	for i, s := range r.specs {
		out[i] = s.Token
	}
	return out
}

// Len reports the number of registered commands.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.specs)
}
