package console

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome reports which branch a submission took.
type Outcome struct {
	Entry    TranscriptEntry
	Appended bool
	Cleared  bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now as the session clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimeLayout sets the layout used for transcript timestamps.
func WithTimeLayout(layout string) Option {
	return func(s *Session) { s.layout = layout }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session owns the transcript, the submitted command log and the recall
// cursor. It is driven by a single event loop and is not safe for
// concurrent use.
type Session struct {
	id        string
	reg       *Registry
	now       func() time.Time
	layout    string
	log       *zap.Logger
	last      time.Time
	entries   []TranscriptEntry
	submitted []string
	cursor    Cursor
}

// NewSession creates an empty session resolving against reg.
func NewSession(reg *Registry, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		reg:    reg,
		now:    time.Now,
		layout: DefaultTimeLayout,
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(zap.String("session", s.id))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Registry returns the registry the session resolves against.
func (s *Session) Registry() *Registry { return s.reg }

// Transcript returns a copy of the scrollback.
func (s *Session) Transcript() []TranscriptEntry {
	out := make([]TranscriptEntry, len(s.entries))
	for i, e := range s.entries {
		e.Output = cloneLines(e.Output)
		out[i] = e
	}
	return out
}

// Submitted returns a copy of every non-empty command submitted so far.
func (s *Session) Submitted() []string {
	out := make([]string, len(s.submitted))
	copy(out, s.submitted)
	return out
}

// Cursor returns the current recall position.
func (s *Session) Cursor() Cursor { return s.cursor }

// Submit resolves raw and records the result. It never fails: unknown
// commands are answered in-band and empty input records a blank prompt.
func (s *Session) Submit(raw string) Outcome {
	at := s.clock()
	e := TranscriptEntry{
		Command:   raw,
		Output:    []string{},
		Timestamp: FormatTimestamp(at, s.layout),
		At:        at,
	}
	var out Outcome
	token := Normalize(raw)
	spec, ok := s.reg.Resolve(raw)
	switch {
	case ok:
		res := s.produce(spec, at)
		if res.Clear {
			s.entries = nil
			out.Cleared = true
			s.log.Debug("transcript cleared", zap.String("token", token))
			break
		}
		if res.Lines != nil {
			e.Output = cloneLines(res.Lines)
		}
		out = s.appendEntry(e)
		s.log.Debug("command executed", zap.String("token", token), zap.Int("lines", len(e.Output)))
	case token == "":
		e.Command = ""
		out = s.appendEntry(e)
	default:
		e.Output = NotFound(raw)
		out = s.appendEntry(e)
		s.log.Debug("command not found", zap.String("input", raw))
	}

	if token != "" {
		s.submitted = append(s.submitted, raw)
	}
	s.cursor = Live
	return out
}

// RecallPrevious moves towards older commands. The oldest entry is a
// floor. ok is false when there is nothing to recall.
func (s *Session) RecallPrevious() (string, bool) {
	n := len(s.submitted)
	if n == 0 {
		return "", false
	}
	i, recalled := s.cursor.Index()
	switch {
	case !recalled:
		i = n - 1
	case i > 0:
		i--
	}
	s.cursor = at(i)
	return s.submitted[i], true
}

// RecallNext moves towards newer commands. Stepping past the newest
// returns to live input with an empty line. ok is false when already live.
func (s *Session) RecallNext() (string, bool) {
	i, recalled := s.cursor.Index()
	if !recalled {
		return "", false
	}
	if i+1 < len(s.submitted) {
		s.cursor = at(i + 1)
		return s.submitted[i+1], true
	}
	s.cursor = Live
	return "", true
}

func (s *Session) appendEntry(e TranscriptEntry) Outcome {
	s.entries = append(s.entries, e)
	e.Output = cloneLines(e.Output)
	return Outcome{Entry: e, Appended: true}
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// clock never goes backwards within a session.
func (s *Session) clock() time.Time {
	t := s.now()
	if t.Before(s.last) {
		t = s.last
	}
	s.last = t
	return t
}

func (s *Session) state(now time.Time) State {
	return State{
		Now:        now,
		Transcript: s.Transcript(),
		Submitted:  s.Submitted(),
		Commands:   s.reg.Commands(),
	}
}

// produce runs a producer, turning a panic into output lines so a
// submission always completes.
func (s *Session) produce(spec CommandSpec, now time.Time) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("producer panicked", zap.String("token", spec.Token), zap.Any("panic", r))
			res = Result{Lines: []string{fmt.Sprintf("%s: internal error: %v", spec.Token, r)}}
		}
	}()
	return spec.Produce(s.state(now))
}
