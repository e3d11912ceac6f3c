package console

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 10, 19, 14, 7, 9, 0, time.UTC)

// tickClock advances one second per call.
func tickClock() func() time.Time {
	t := epoch
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(DefaultRegistry(), WithClock(tickClock()))
}

func TestSubmitKnownCommand(t *testing.T) {
	s := newTestSession(t)
	out := s.Submit("/status")

	require.True(t, out.Appended)
	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, "/status", tr[0].Command)
	if diff := cmp.Diff(statusLines, tr[0].Output); diff != "" {
		t.Fatalf("status output mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "2:07:10 PM", tr[0].Timestamp)
}

func TestSubmitKeepsRawCommand(t *testing.T) {
	s := newTestSession(t)
	s.Submit("  /STATUS ")

	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, "  /STATUS ", tr[0].Command)
	assert.Equal(t, statusLines[0], tr[0].Output[0])
	assert.Equal(t, []string{"  /STATUS "}, s.Submitted())
}

func TestSubmitUnknownCommand(t *testing.T) {
	s := newTestSession(t)
	s.Submit("/bogus")

	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, []string{
		"Command not found: /bogus",
		"Type /help to see available commands.",
	}, tr[0].Output)
	assert.Equal(t, []string{"/bogus"}, s.Submitted())
}

func TestSubmitEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		s := newTestSession(t)
		out := s.Submit(in)

		require.True(t, out.Appended, "input %q", in)
		tr := s.Transcript()
		require.Len(t, tr, 1)
		assert.Equal(t, "", tr[0].Command)
		assert.NotNil(t, tr[0].Output)
		assert.Empty(t, tr[0].Output)
		assert.Empty(t, s.Submitted(), "input %q must not be logged", in)
	}
}

func TestSubmitClear(t *testing.T) {
	s := newTestSession(t)
	s.Submit("/status")
	s.Submit("/about")
	out := s.Submit("/clear")

	assert.True(t, out.Cleared)
	assert.False(t, out.Appended)
	assert.Empty(t, s.Transcript())
	assert.Equal(t, []string{"/status", "/about", "/clear"}, s.Submitted())
	assert.True(t, s.Cursor().IsLive())
}

func TestSubmitNeverPanics(t *testing.T) {
	s := newTestSession(t)
	inputs := []string{"\x00", "\x1b[A", "\xff\xfe", "/help\x00", " ", "/ＨＥＬＰ"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { s.Submit(in) }, "input %q", in)
	}
	assert.Len(t, s.Transcript(), len(inputs))
}

func TestSubmitResetsCursor(t *testing.T) {
	s := newTestSession(t)
	s.Submit("/status")
	s.Submit("/logs")
	_, ok := s.RecallPrevious()
	require.True(t, ok)
	require.False(t, s.Cursor().IsLive())

	s.Submit("")
	assert.True(t, s.Cursor().IsLive())
}

func TestSubmittedGrowth(t *testing.T) {
	s := newTestSession(t)
	cases := []struct {
		in   string
		grow int
	}{
		{"/help", 1},
		{"", 0},
		{"  ", 0},
		{"nope", 1},
		{"/clear", 1},
		{" /exit ", 1},
	}
	for _, c := range cases {
		before := len(s.Submitted())
		s.Submit(c.in)
		assert.Equal(t, before+c.grow, len(s.Submitted()), "input %q", c.in)
	}
}

func TestTimestampsNeverGoBackwards(t *testing.T) {
	times := []time.Time{epoch, epoch.Add(-time.Hour), epoch.Add(time.Minute)}
	i := 0
	s := NewSession(DefaultRegistry(), WithClock(func() time.Time {
		now := times[i]
		i++
		return now
	}))
	s.Submit("a")
	s.Submit("b")
	s.Submit("c")

	tr := s.Transcript()
	require.Len(t, tr, 3)
	assert.False(t, tr[1].At.Before(tr[0].At))
	assert.False(t, tr[2].At.Before(tr[1].At))
}

func TestRecallPreviousWalksBackToFloor(t *testing.T) {
	s := newTestSession(t)
	for _, c := range []string{"/a", "/b", "/c"} {
		s.Submit(c)
	}

	var got []string
	for i := 0; i < 4; i++ {
		v, ok := s.RecallPrevious()
		require.True(t, ok)
		got = append(got, v)
	}
	assert.Equal(t, []string{"/c", "/b", "/a", "/a"}, got)
	i, ok := s.Cursor().Index()
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestRecallPreviousEmpty(t *testing.T) {
	s := newTestSession(t)
	s.Submit("")
	v, ok := s.RecallPrevious()
	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.True(t, s.Cursor().IsLive())
}

func TestRecallNextFromLive(t *testing.T) {
	s := newTestSession(t)
	s.Submit("/status")
	v, ok := s.RecallNext()
	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.True(t, s.Cursor().IsLive())
}

func TestRecallNextPastNewest(t *testing.T) {
	s := newTestSession(t)
	s.Submit("/status")
	v, ok := s.RecallPrevious()
	require.True(t, ok)
	require.Equal(t, "/status", v)

	v, ok = s.RecallNext()
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.True(t, s.Cursor().IsLive())
}

func TestClearKeepsRecall(t *testing.T) {
	s := newTestSession(t)
	s.Submit("/status")
	s.Submit("/clear")

	v, ok := s.RecallPrevious()
	require.True(t, ok)
	assert.Equal(t, "/clear", v)
	v, _ = s.RecallPrevious()
	assert.Equal(t, "/status", v)
}

func TestScenarioHelpClearEmptyBogus(t *testing.T) {
	s := newTestSession(t)

	s.Submit("/help")
	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, "/help", tr[0].Command)
	assert.Equal(t, "Available commands:", tr[0].Output[0])

	s.Submit("/clear")
	assert.Empty(t, s.Transcript())

	s.Submit("")
	tr = s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, "", tr[0].Command)
	assert.Empty(t, tr[0].Output)

	s.Submit("/bogus")
	tr = s.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, "Command not found: /bogus", tr[1].Output[0])
}

func TestScenarioRecall(t *testing.T) {
	s := newTestSession(t)
	s.Submit("/status")
	s.Submit("/logs")

	v, _ := s.RecallPrevious()
	assert.Equal(t, "/logs", v)
	v, _ = s.RecallPrevious()
	assert.Equal(t, "/status", v)
	v, _ = s.RecallNext()
	assert.Equal(t, "/logs", v)
	v, ok := s.RecallNext()
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.True(t, s.Cursor().IsLive())
}

func TestProducerSeesState(t *testing.T) {
	var seen State
	reg, err := NewRegistry(CommandSpec{
		Token: "/peek",
		Produce: func(st State) Result {
			seen = st
			return Result{Lines: []string{"ok"}}
		},
	})
	require.NoError(t, err)
	s := NewSession(reg, WithClock(tickClock()))
	s.Submit("first")
	s.Submit("/peek")

	assert.Equal(t, []string{"first"}, seen.Submitted)
	require.Len(t, seen.Transcript, 1)
	assert.Equal(t, "first", seen.Transcript[0].Command)
	assert.Equal(t, epoch.Add(2*time.Second), seen.Now)
	require.Len(t, seen.Commands, 1)
}

func TestProducerPanicIsReportedInBand(t *testing.T) {
	reg, err := NewRegistry(CommandSpec{
		Token:   "/boom",
		Produce: func(State) Result { panic("kaboom") },
	})
	require.NoError(t, err)
	s := NewSession(reg)

	require.NotPanics(t, func() { s.Submit("/boom") })
	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, []string{"/boom: internal error: kaboom"}, tr[0].Output)
	assert.True(t, s.Cursor().IsLive())
}

func TestTranscriptIsCopied(t *testing.T) {
	s := newTestSession(t)
	out := s.Submit("/status")
	out.Entry.Output[0] = "changed via outcome"

	tr := s.Transcript()
	tr[0].Command = "mutated"
	tr[0].Output[1] = "changed via transcript"

	got := s.Transcript()[0]
	assert.Equal(t, "/status", got.Command)
	assert.Equal(t, statusLines[0], got.Output[0])
	assert.Equal(t, statusLines[1], got.Output[1])
}

func TestProducerCannotRewriteHistory(t *testing.T) {
	lines := []string{"kept"}
	reg, err := NewRegistry(
		CommandSpec{Token: "/echo", Produce: func(State) Result { return Result{Lines: lines} }},
		CommandSpec{Token: "/vandal", Produce: func(st State) Result {
			st.Transcript[0].Output[0] = "rewritten"
			return Result{}
		}},
	)
	require.NoError(t, err)
	s := NewSession(reg, WithClock(tickClock()))
	s.Submit("/echo")
	lines[0] = "changed after return"
	s.Submit("/vandal")

	assert.Equal(t, []string{"kept"}, s.Transcript()[0].Output)
}

func TestByteOrderMarkOnlyIsEmpty(t *testing.T) {
	s := newTestSession(t)
	s.Submit("\ufeff ")
	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, "", tr[0].Command)
	assert.Empty(t, s.Submitted())
}

func TestSessionIDsDiffer(t *testing.T) {
	a := NewSession(DefaultRegistry())
	b := NewSession(DefaultRegistry())
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
