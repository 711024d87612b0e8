package store

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when no item matches the requested id (and partition key).
	ErrNotFound = errors.New("todolist: item not found")

	// ErrMissingID is returned when an item without an id reaches the store.
	ErrMissingID = errors.New("todolist: item id is required")

	// ErrMissingPartitionKey is returned when an item has an empty description.
	// The description is the partition key and DynamoDB rejects empty key attributes.
	ErrMissingPartitionKey = errors.New("todolist: item partition key (description) is required")
)
