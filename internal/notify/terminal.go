package notify

import (
	"fmt"
	"io"
	"strings"

	"shelf-go/internal/shelf"
)

// TerminalSink emits audio cues as terminal bell characters and prints
// urgent alerts as plain lines. Write failures are swallowed: a broken
// terminal must never fail the mutation that triggered the cue.
type TerminalSink struct {
	w      io.Writer
	logger shelf.Logger
}

// NewTerminalSink creates a TerminalSink writing to w (normally stderr).
func NewTerminalSink(w io.Writer, logger shelf.Logger) *TerminalSink {
	return &TerminalSink{w: w, logger: logger}
}

// Beep writes one bell character per severity level, so urgency scales the
// cue's duration the way the tone generator did.
func (s *TerminalSink) Beep(level int) {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	if _, err := io.WriteString(s.w, strings.Repeat("\a", level)); err != nil {
		s.logger.Debug("beep failed", "error", err)
	}
}

// Alert prints the alert text. Delivery is best effort.
func (s *TerminalSink) Alert(title, body string) {
	if _, err := fmt.Fprintf(s.w, "!! %s: %s\n", title, body); err != nil {
		s.logger.Debug("alert print failed", "error", err)
	}
}

var _ shelf.AlertSink = (*TerminalSink)(nil)
