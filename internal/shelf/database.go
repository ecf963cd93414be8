package shelf

import "shelf-go/internal/model"

// Database records the history of mutating operations.
type Database interface {
	// CreateMutation inserts a new in-flight mutation record and returns it
	// with its auto-increment ID assigned.
	CreateMutation(operation, itemID, details string) (*model.Mutation, error)

	// FinishMutation stamps the finish time and final status on a mutation.
	FinishMutation(id int64, status string) error

	// ListMutations returns the most recent mutations, newest first.
	ListMutations(limit int) ([]*model.Mutation, error)

	// MaxMutationID returns the highest mutation ID recorded, 0 if none.
	MaxMutationID() (int64, error)

	// CheckMigrations verifies the schema is at the latest version.
	CheckMigrations() error

	// Close closes the database connection.
	Close() error
}
