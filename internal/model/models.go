package model

// DateLayout is the wire format for expiry dates: an ISO-8601 calendar date
// with no time-of-day component.
const DateLayout = "2006-01-02"

// Item represents a tracked perishable or time-limited unit.
// The JSON tags define the persisted wire format and must not change.
type Item struct {
	ID         string `json:"id"`         // UUID, immutable
	Name       string `json:"name"`       // required, non-empty
	SKU        string `json:"sku"`        // optional short code
	ExpiryDate string `json:"expiryDate"` // ISO calendar date (DateLayout)
	Category   string `json:"category"`   // one of Categories
	Notes      string `json:"notes"`      // optional free text
	CreatedAt  int64  `json:"createdAt"`  // epoch millis, immutable
}

// Categories is the fixed set of classification tags. The first entry is the
// default for items created without a category.
var Categories = []string{
	"Food & Beverage",
	"Medicine",
	"Cosmetics",
	"Electronics",
	"Industrial",
	"Other",
}

// DefaultCategory returns the category applied when none is supplied.
func DefaultCategory() string { return Categories[0] }

// KnownCategory reports whether c is one of the fixed category tags.
// Classification and aggregation never depend on this holding true.
func KnownCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Mutation is one recorded mutating operation against the inventory.
type Mutation struct {
	ID         int64
	Operation  string // e.g. "AddItem", "DeleteItem"
	ItemID     string // affected item, empty for bulk operations
	Details    string
	StartedAt  int64 // epoch millis
	FinishedAt int64 // epoch millis, 0 while in flight
	Status     string
}
