package shelf

import (
	"time"

	"shelf-go/internal/model"
)

// Status is an urgency tier derived from an item's expiry date.
type Status string

const (
	StatusExpired     Status = "EXPIRED"
	StatusCritical    Status = "CRITICAL"
	StatusWarning     Status = "WARNING"
	StatusApproaching Status = "APPROACHING"
	StatusSafe        Status = "SAFE"
)

// Statuses lists every tier, most urgent first.
var Statuses = []Status{
	StatusExpired,
	StatusCritical,
	StatusWarning,
	StatusApproaching,
	StatusSafe,
}

// Classification is the derived urgency of one item as of a given date.
// It is recomputed on every read and never stored.
type Classification struct {
	DaysLeft   int    // signed whole-day count; negative means past due
	Status     Status
	Color      string // display accent, 1:1 with Status
	AlarmLevel int    // 0-3, non-decreasing with urgency
}

// tier is one row of the classification decision table. Rows are evaluated
// in order; the first row whose maxDays bound holds wins.
type tier struct {
	maxDays    int // inclusive upper bound on DaysLeft
	status     Status
	color      string
	alarmLevel int
}

var tiers = []tier{
	{-1, StatusExpired, "#ef4444", 3},
	{0, StatusCritical, "#f43f5e", 3},
	{6, StatusWarning, "#f97316", 2},
	{14, StatusApproaching, "#eab308", 1},
}

// safeTier catches everything at 15 days out or more.
var safeTier = tier{status: StatusSafe, color: "#10b981", alarmLevel: 0}

// Classify maps an expiry date to its urgency tier as of today.
// Both arguments are normalized to whole calendar days before comparison, so
// time-of-day and timezone sub-day precision never affect the result.
// The day the item expires is CRITICAL, not WARNING: day 0 gets a one-day
// grace distinction from days 1-6.
//
// Classify is pure and total. Callers are responsible for only passing dates
// that came from a validated item.
func Classify(expiry, today time.Time) Classification {
	// Both ends are rebuilt at UTC midnight, so the division is exact.
	days := int(Midnight(expiry).Sub(Midnight(today)) / (24 * time.Hour))

	for _, t := range tiers {
		if days <= t.maxDays {
			return Classification{DaysLeft: days, Status: t.status, Color: t.color, AlarmLevel: t.alarmLevel}
		}
	}
	return Classification{DaysLeft: days, Status: safeTier.status, Color: safeTier.color, AlarmLevel: safeTier.alarmLevel}
}

// Midnight discards the time-of-day and timezone of t, keeping only its
// calendar day. Rebuilding at UTC keeps day arithmetic immune to DST.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Label returns a short human-readable description for CLI output.
func (s Status) Label() string {
	switch s {
	case StatusExpired:
		return "Expired"
	case StatusCritical:
		return "Expires today"
	case StatusWarning:
		return "Expires within a week"
	case StatusApproaching:
		return "Expiring soon"
	case StatusSafe:
		return "Safe"
	default:
		return "Unknown"
	}
}

// Color returns the display accent tied to this status.
func (s Status) Color() string {
	for _, t := range tiers {
		if t.status == s {
			return t.color
		}
	}
	return safeTier.color
}

// itemExpiry parses an item's expiry date. Items held by a Store are always
// valid; a parse failure yields the zero time, which sorts first.
func itemExpiry(it model.Item) time.Time {
	t, _ := time.Parse(model.DateLayout, it.ExpiryDate)
	return t
}
