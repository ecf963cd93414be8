package app

// Operation tracks a CLI command that may mutate the inventory.
// Operations are created in memory with ID=0. Only mutating commands persist
// them (giving them an auto-increment ID from the history database).
type Operation struct {
	ID        int64
	Operation string
	ItemID    string
	Details   string
	Status    string // "success" or "error"
}

// NewOperation creates a new in-memory operation record.
func NewOperation(operation, itemID, details string) *Operation {
	return &Operation{
		Operation: operation,
		ItemID:    itemID,
		Details:   details,
		Status:    "success",
	}
}

// Persisted returns true if this operation has been saved to the database.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}
