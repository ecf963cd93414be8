package notify_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"shelf-go/internal/notify"
	"shelf-go/internal/shelf"
	"shelf-go/internal/testutil"
)

func TestTerminalSink_Beep(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		wantBells int
	}{
		{"soft", 1, 1},
		{"noticeable", 2, 2},
		{"urgent", 3, 3},
		{"clamped low", 0, 1},
		{"clamped high", 9, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := notify.NewTerminalSink(&buf, shelf.NopLogger{})

			sink.Beep(tt.level)

			if got := strings.Count(buf.String(), "\a"); got != tt.wantBells {
				t.Errorf("wrote %d bells, want %d", got, tt.wantBells)
			}
		})
	}
}

func TestTerminalSink_Alert(t *testing.T) {
	var buf bytes.Buffer
	sink := notify.NewTerminalSink(&buf, shelf.NopLogger{})

	sink.Alert("Expiry alert", "Milk: Expires today")

	got := buf.String()
	if got != "!! Expiry alert: Milk: Expires today\n" {
		t.Errorf("Alert output = %q", got)
	}
}

func TestTerminalSink_SwallowsWriteErrors(t *testing.T) {
	sink := notify.NewTerminalSink(failWriter{}, shelf.NopLogger{})

	// Must not panic or propagate.
	sink.Beep(2)
	sink.Alert("t", "b")
}

func TestCompositeSink(t *testing.T) {
	a := testutil.NewRecorderSink()
	b := testutil.NewRecorderSink()
	sink := notify.NewCompositeSink(a, b)

	sink.Beep(2)
	sink.Alert("title", "body")

	for i, rec := range []*testutil.RecorderSink{a, b} {
		if got := rec.Beeps(); len(got) != 1 || got[0] != 2 {
			t.Errorf("sink %d Beeps() = %v, want [2]", i, got)
		}
		if got := rec.Alerts(); len(got) != 1 || got[0].Title != "title" {
			t.Errorf("sink %d Alerts() = %v, want one alert", i, got)
		}
	}
}

func TestDesktopSink_DeniedStaysQuiet(t *testing.T) {
	sink := notify.NewDesktopSink("denied", shelf.NopLogger{})

	// Denied permission must not shell out; the call returns without effect.
	sink.Alert("title", "body")
	sink.Beep(3)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}
