package notify

import "shelf-go/internal/shelf"

// CompositeSink fans every signal out to all member sinks.
type CompositeSink struct {
	sinks []shelf.AlertSink
}

// NewCompositeSink combines sinks into one.
func NewCompositeSink(sinks ...shelf.AlertSink) *CompositeSink {
	return &CompositeSink{sinks: sinks}
}

func (c *CompositeSink) Beep(level int) {
	for _, s := range c.sinks {
		s.Beep(level)
	}
}

func (c *CompositeSink) Alert(title, body string) {
	for _, s := range c.sinks {
		s.Alert(title, body)
	}
}

var _ shelf.AlertSink = (*CompositeSink)(nil)
