// Package todo defines the to-do item entity shared by the store, service and API layers.
package todo

import (
	"fmt"
	"time"
)

// Item is a to-do item. Description doubles as the store partition key.
type Item struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Description string    `json:"description" dynamodbav:"description"`
	Owner       string    `json:"owner" dynamodbav:"owner"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
	Finished    bool      `json:"finished" dynamodbav:"finished"`
}

// PartitionKey returns the value the backing store routes the item with.
func (i Item) PartitionKey() string {
	return i.Description
}

// Equal reports whether both items hold the same six fields.
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID &&
		i.Description == other.Description &&
		i.Owner == other.Owner &&
		i.CreatedAt.Equal(other.CreatedAt) &&
		i.UpdatedAt.Equal(other.UpdatedAt) &&
		i.Finished == other.Finished
}

func (i Item) String() string {
	return fmt.Sprintf(
		"Item{id=%q, description=%q, owner=%q, createdAt=%s, updatedAt=%s, finished=%t}",
		i.ID, i.Description, i.Owner,
		i.CreatedAt.Format(time.RFC3339Nano), i.UpdatedAt.Format(time.RFC3339Nano),
		i.Finished,
	)
}
