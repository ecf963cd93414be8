package shelf

// Beep severity levels. Higher is more intrusive.
const (
	BeepSoft       = 1 // acknowledgment of a successful create/update
	BeepNoticeable = 2 // delete, filter-driven emphasis
	BeepUrgent     = 3 // EXPIRED/CRITICAL alarm
)

// AlertSink receives fire-and-forget notification signals. Implementations
// must never fail the caller: delivery is best effort, failures are
// swallowed and logged. The core never awaits or inspects the outcome.
type AlertSink interface {
	// Beep emits a short audio cue scaled to the severity level (1-3).
	Beep(level int)

	// Alert raises a system notification. Implementations gated by a
	// permission state must check it on every call, never assume granted.
	Alert(title, body string)
}

// NopSink discards all signals. Use in tests.
type NopSink struct{}

func (NopSink) Beep(int)            {}
func (NopSink) Alert(string, string) {}
