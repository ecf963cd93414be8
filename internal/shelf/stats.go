package shelf

import (
	"time"

	"shelf-go/internal/model"
)

// Stats summarizes the whole inventory as of one date.
type Stats struct {
	Total          int
	CountsByStatus map[Status]int // zero-filled: every status always present
	CriticalCount  int            // items at alarm level 2 or higher
	HealthRatio    float64        // fraction of items below alarm level 2
}

// Aggregate tallies classifications across all items. The counts map always
// carries all five statuses; presentation may drop the zero entries, the
// aggregator never does. An empty inventory reports a health ratio of 1.0.
func Aggregate(items []model.Item, today time.Time) Stats {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}

	critical := 0
	for _, it := range items {
		c := Classify(itemExpiry(it), today)
		counts[c.Status]++
		if c.AlarmLevel >= 2 {
			critical++
		}
	}

	ratio := 1.0
	if len(items) > 0 {
		ratio = float64(len(items)-critical) / float64(len(items))
	}

	return Stats{
		Total:          len(items),
		CountsByStatus: counts,
		CriticalCount:  critical,
		HealthRatio:    ratio,
	}
}
