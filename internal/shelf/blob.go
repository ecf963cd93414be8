package shelf

import "io"

// BlobStore persists the serialized inventory as a single named slot.
// All operations use io.Reader/io.Writer so backends can stream without
// holding a second copy of the collection.
type BlobStore interface {
	// PutInventory stores the serialized collection, replacing any previous
	// contents. size is the number of bytes that will be read from r.
	// version is stored alongside the blob for consistency checks.
	PutInventory(r io.Reader, size int64, version int64) error

	// GetInventory writes the stored collection to w.
	// Returns ErrNoInventory (possibly wrapped) when nothing is stored.
	GetInventory(w io.Writer) error

	// InventoryVersion returns the stored version, or 0 when nothing has
	// been stored yet.
	InventoryVersion() (int64, error)

	// ValidateSetup verifies that the store is accessible and properly
	// configured.
	ValidateSetup() error
}
