// Package cache provides an ItemStore decorator that keeps recent reads in an expirable LRU.
package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/todo"
)

const allItemsKey = "all"

// Store caches reads of a backend ItemStore.
//
// Every write bumps a generation counter; a read only fills the cache if no
// write happened while it was reaching the backend.
type Store struct {
	backend   store.ItemStore
	itemCache *expirable.LRU[string, todo.Item]
	listCache *expirable.LRU[string, []todo.Item]

	mu         sync.Mutex
	generation uint64
}

// Save implements [store.ItemStore].
func (s *Store) Save(ctx context.Context, item todo.Item) (todo.Item, error) {
	generation := s.currentGeneration()

	saved, err := s.backend.Save(ctx, item)
	if err != nil {
		return todo.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation == generation {
		s.itemCache.Add(saved.ID, saved)
	} else {
		s.itemCache.Remove(saved.ID)
	}
	s.generation++
	s.listCache.Remove(allItemsKey)

	return saved, nil
}

// FindByID implements [store.ItemStore].
func (s *Store) FindByID(ctx context.Context, id string) (todo.Item, error) {
	if item, exists := s.itemCache.Get(id); exists {
		return item, nil
	}

	generation := s.currentGeneration()

	item, err := s.backend.FindByID(ctx, id)
	if err != nil {
		return todo.Item{}, err
	}

	s.fill(generation, func() {
		s.itemCache.Add(id, item)
	})

	return item, nil
}

// FindAll implements [store.ItemStore].
func (s *Store) FindAll(ctx context.Context) ([]todo.Item, error) {
	if items, exists := s.listCache.Get(allItemsKey); exists {
		return slices.Clone(items), nil
	}

	generation := s.currentGeneration()

	items, err := s.backend.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.fill(generation, func() {
		s.listCache.Add(allItemsKey, slices.Clone(items))
	})

	return items, nil
}

// DeleteByID implements [store.ItemStore].
func (s *Store) DeleteByID(ctx context.Context, id string, partitionKey string) error {
	s.invalidate(id)
	defer s.invalidate(id)

	return s.backend.DeleteByID(ctx, id, partitionKey)
}

func (s *Store) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// fill runs add unless a write happened since generation was read.
func (s *Store) fill(generation uint64, add func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		return
	}

	add()
}

func (s *Store) invalidate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.itemCache.Remove(id)
	s.listCache.Remove(allItemsKey)
}

func NewStore(backend store.ItemStore, size int, ttl time.Duration) *Store {
	return &Store{
		backend:   backend,
		itemCache: expirable.NewLRU[string, todo.Item](size, nil, ttl),
		listCache: expirable.NewLRU[string, []todo.Item](1, nil, ttl),
	}
}

var _ store.ItemStore = &Store{}
