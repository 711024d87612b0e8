package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/todolist/todo"
)

// ItemStore is the persistence collaborator of the item service.
type ItemStore interface {
	// Save inserts or replaces the item identified by its id and partition key.
	// Saving an existing id under another partition key does not remove the
	// previous record in every backend: callers moving an item delete the
	// previous version first.
	Save(ctx context.Context, item todo.Item) (todo.Item, error)

	// FindByID returns the item with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (todo.Item, error)

	// FindAll returns every stored item, in no particular order.
	FindAll(ctx context.Context) ([]todo.Item, error)

	// DeleteByID removes the item with the given id from the given partition.
	// It returns ErrNotFound when no such item exists.
	DeleteByID(ctx context.Context, id string, partitionKey string) error
}

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// ItemKey returns the primary key of an item in the items table.
func ItemKey(id, partitionKey string) PK {
	return PK{
		AttrDescription: &types.AttributeValueMemberS{Value: partitionKey},
		AttrID:          &types.AttributeValueMemberS{Value: id},
	}
}

// Attribute names of the items table.
const (
	AttrID          = "id"
	AttrDescription = "description"
)

// ValidateKey checks the fields every backend requires to address an item.
func ValidateKey(id, partitionKey string) error {
	if id == "" {
		return ErrMissingID
	}
	if partitionKey == "" {
		return ErrMissingPartitionKey
	}
	return nil
}
