// Package store provides persistence for to-do items.
//
// The [ItemStore] interface is the contract shared by every backend. This
// package implements it on DynamoDB; the memory, sqlite and cache
// subpackages provide the other backends.
//
// # Table Layout
//
// Items live in a single table whose hash key is the item description and
// whose range key is the item id. Because callers usually only know the id,
// [Store.FindByID] queries a global secondary index keyed on "id". Reads
// through that index are eventually consistent.
//
// Use [CreateTable] to provision the table and index:
//
//	cfg := store.DefaultConfig()
//	if err := store.CreateTable(ctx, client, cfg); err != nil {
//	    return err
//	}
//	s := store.New(client, cfg)
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - no item with the given id (and partition key)
//   - [ErrMissingID] - an item without id reached the store
//   - [ErrMissingPartitionKey] - an item without description reached the store
package store
