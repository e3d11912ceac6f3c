// Package console implements the command registry and the session state
// machine behind the interactive terminal: submissions, the scrollback
// transcript and history recall.
package console

import "time"

// Result is what a producer hands back for a single invocation.
type Result struct {
	Lines []string
	// Clear asks the session to discard the transcript instead of appending.
	Clear bool
}

// Producer computes a command's output from a read-only view of the session.
type Producer func(State) Result

// CommandSpec identifies one recognized command.
type CommandSpec struct {
	Token    string
	Describe string
	Produce  Producer
}

// State is the snapshot passed to producers. Slices are copies.
type State struct {
	Now        time.Time
	Transcript []TranscriptEntry
	Submitted  []string
	Commands   []CommandSpec
}

// TranscriptEntry is one resolved submission.
type TranscriptEntry struct {
	Command   string
	Output    []string
	Timestamp string
	At        time.Time
}
