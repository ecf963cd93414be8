package shelf

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update or delete references an unknown
// item id. The collection is left unchanged.
var ErrNotFound = errors.New("item not found")

// ErrNoInventory is returned by a BlobStore when nothing has been persisted
// yet. Loading treats it as an empty collection, never as a failure.
var ErrNoInventory = errors.New("no inventory stored")

// ValidationError reports a rejected create or update. The mutation has no
// effect on the collection.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
