package notify

import (
	"os"

	"shelf-go/internal/config"
	"shelf-go/internal/shelf"
)

// NewSinkFromConfig builds the alert sink stack from configuration.
// With everything disabled the result is a NopSink, so callers never need a
// nil check.
func NewSinkFromConfig(cfg config.NotifyConfig, logger shelf.Logger) shelf.AlertSink {
	var sinks []shelf.AlertSink
	if cfg.Sound {
		sinks = append(sinks, NewTerminalSink(os.Stderr, logger))
	}
	sinks = append(sinks, NewDesktopSink(cfg.Desktop, logger))

	if len(sinks) == 1 {
		return sinks[0]
	}
	return NewCompositeSink(sinks...)
}
