// Package memory provides an in-process ItemStore, used for local runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/todo"
)

// Store keeps items in partitions keyed by description, then by id.
// An id lives in at most one partition: saving it under a new description
// moves it.
type Store struct {
	mu         sync.RWMutex
	partitions map[string]map[string]todo.Item
	index      map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		partitions: make(map[string]map[string]todo.Item),
		index:      make(map[string]string),
	}
}

var _ store.ItemStore = &Store{}

// Save implements [store.ItemStore].
func (s *Store) Save(ctx context.Context, item todo.Item) (todo.Item, error) {
	if err := store.ValidateKey(item.ID, item.PartitionKey()); err != nil {
		return todo.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, exists := s.index[item.ID]; exists && previous != item.PartitionKey() {
		s.removeLocked(item.ID, previous)
	}

	partition, exists := s.partitions[item.PartitionKey()]
	if !exists {
		partition = make(map[string]todo.Item)
		s.partitions[item.PartitionKey()] = partition
	}

	partition[item.ID] = item
	s.index[item.ID] = item.PartitionKey()

	return item, nil
}

// FindByID implements [store.ItemStore].
func (s *Store) FindByID(ctx context.Context, id string) (todo.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	partitionKey, exists := s.index[id]
	if !exists {
		return todo.Item{}, store.ErrNotFound
	}

	return s.partitions[partitionKey][id], nil
}

// FindAll implements [store.ItemStore].
func (s *Store) FindAll(ctx context.Context) ([]todo.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]todo.Item, 0, len(s.index))
	for _, partition := range s.partitions {
		for _, item := range partition {
			items = append(items, item)
		}
	}

	return items, nil
}

// DeleteByID implements [store.ItemStore].
func (s *Store) DeleteByID(ctx context.Context, id string, partitionKey string) error {
	if err := store.ValidateKey(id, partitionKey); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.partitions[partitionKey][id]; !exists {
		return store.ErrNotFound
	}

	s.removeLocked(id, partitionKey)

	return nil
}

func (s *Store) removeLocked(id string, partitionKey string) {
	partition := s.partitions[partitionKey]
	delete(partition, id)
	if len(partition) == 0 {
		delete(s.partitions, partitionKey)
	}
	delete(s.index, id)
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.index)
}
