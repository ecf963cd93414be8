package testutil

import "sync"

// RecordedAlert is one Alert call captured by a RecorderSink.
type RecordedAlert struct {
	Title string
	Body  string
}

// RecorderSink captures every signal for assertions. Safe for concurrent use.
type RecorderSink struct {
	mu     sync.Mutex
	beeps  []int
	alerts []RecordedAlert
}

// NewRecorderSink creates an empty RecorderSink.
func NewRecorderSink() *RecorderSink {
	return &RecorderSink{}
}

func (r *RecorderSink) Beep(level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beeps = append(r.beeps, level)
}

func (r *RecorderSink) Alert(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, RecordedAlert{Title: title, Body: body})
}

// Beeps returns the captured beep levels in order.
func (r *RecorderSink) Beeps() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int{}, r.beeps...)
}

// Alerts returns the captured alerts in order.
func (r *RecorderSink) Alerts() []RecordedAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedAlert{}, r.alerts...)
}
