package notify

import (
	"os/exec"

	"shelf-go/internal/shelf"
)

// DesktopSink raises desktop notifications via notify-send. It is gated by
// the configured permission state, which is checked on every call and never
// assumed granted. A missing or failing notify-send is swallowed and logged.
type DesktopSink struct {
	permission string // "granted" allows delivery; anything else denies
	logger     shelf.Logger
}

// NewDesktopSink creates a DesktopSink with the given permission state.
func NewDesktopSink(permission string, logger shelf.Logger) *DesktopSink {
	return &DesktopSink{permission: permission, logger: logger}
}

// Beep is not supported by the desktop sink.
func (s *DesktopSink) Beep(int) {}

// Alert sends a desktop notification if permission is granted.
func (s *DesktopSink) Alert(title, body string) {
	if s.permission != "granted" {
		s.logger.Debug("desktop notification suppressed", "permission", s.permission)
		return
	}
	if err := exec.Command("notify-send", title, body).Run(); err != nil {
		s.logger.Warn("desktop notification failed", "error", err)
	}
}

var _ shelf.AlertSink = (*DesktopSink)(nil)
