package shelf

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"shelf-go/internal/model"
)

// StatusFilter selects items by classified status. The zero value matches
// every status, acting as the "no filter" sentinel distinguishable from all
// real statuses.
type StatusFilter struct {
	status Status
	active bool
}

// FilterAll matches every status.
var FilterAll = StatusFilter{}

// FilterStatus matches only items classified with exactly s.
func FilterStatus(s Status) StatusFilter {
	return StatusFilter{status: s, active: true}
}

// Active reports whether the filter restricts by status at all.
func (f StatusFilter) Active() bool { return f.active }

// Matches reports whether an item with the given status passes the filter.
func (f StatusFilter) Matches(s Status) bool {
	return !f.active || f.status == s
}

// Status returns the status the filter restricts to. Only meaningful when
// Active is true.
func (f StatusFilter) Status() Status { return f.status }

// ParseStatusFilter maps CLI input to a filter. Empty input and the "ALL"
// sentinel mean no filter; anything else must name a status.
func ParseStatusFilter(s string) (StatusFilter, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "" || upper == "ALL" {
		return FilterAll, nil
	}
	for _, known := range Statuses {
		if string(known) == upper {
			return FilterStatus(known), nil
		}
	}
	return FilterAll, fmt.Errorf("unknown status %q", s)
}

// Query derives the display view of the inventory: items matching the
// free-text search (case-insensitive on name and sku) and the status filter,
// stably sorted ascending by expiry date so equal dates keep their original
// relative order.
//
// Classification for the whole pass is computed against the single today
// value passed in, so a pass spanning a real midnight cannot mix tiers.
func Query(items []model.Item, search string, filter StatusFilter, today time.Time) []model.Item {
	needle := strings.ToLower(search)

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(it.Name), needle) &&
			!strings.Contains(strings.ToLower(it.SKU), needle) {
			continue
		}
		if filter.Active() && !filter.Matches(Classify(itemExpiry(it), today).Status) {
			continue
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return itemExpiry(out[i]).Before(itemExpiry(out[j]))
	})
	return out
}
