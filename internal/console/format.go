package console

import (
	"fmt"
	"time"
)

const (
	// DefaultTimeLayout matches an en-US locale time string, e.g. "2:07:09 PM".
	DefaultTimeLayout = "3:04:05 PM"
	// DefaultPrompt is shown before every command in the transcript.
	DefaultPrompt = "talon@system:~$"

	isoLayout = "2006-01-02T15:04:05.000Z"
)

// FormatTimestamp renders t with layout, falling back to DefaultTimeLayout.
func FormatTimestamp(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return t.Format(layout)
}

func isoStamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// NotFound is the fixed two-line answer to an unrecognized command.
func NotFound(raw string) []string {
	return []string{
		fmt.Sprintf("Command not found: %s", raw),
		"Type /help to see available commands.",
	}
}

// Render lays out an entry the way the transcript shows it: a prompt line
// followed by the indented output.
func Render(e TranscriptEntry, prompt string) []string {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	lines := make([]string, 0, len(e.Output)+1)
	head := fmt.Sprintf("[%s] %s", e.Timestamp, prompt)
	if e.Command != "" {
		head += " " + e.Command
	}
	lines = append(lines, head)
	for _, l := range e.Output {
		lines = append(lines, "    "+l)
	}
	return lines
}
