// package service implements business logic for the application
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/todo"
)

// HomeContent is the content of the home greeting.
const HomeContent = "home"

// TodoService handles business logic for to-do item operations
type TodoService struct {
	store store.ItemStore
	now   func() time.Time
	newID func() string
}

// Option configures a TodoService.
type Option func(s *TodoService)

// WithClock sets the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *TodoService) {
		s.now = now
	}
}

// WithIDGenerator sets the generator used for new item ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *TodoService) {
		s.newID = newID
	}
}

// NewTodoService creates a new todo service with the given store
func NewTodoService(itemStore store.ItemStore, funcs ...Option) *TodoService {
	s := &TodoService{
		store: itemStore,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, fn := range funcs {
		fn(s)
	}
	return s
}

// Get returns the item with the given id.
func (s *TodoService) Get(ctx context.Context, id string) (todo.Item, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return todo.Item{}, errors.WithStack(err)
	}

	return item, nil
}

// List returns every item, most recently updated first.
func (s *TodoService) List(ctx context.Context) ([]todo.Item, error) {
	items, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	todo.SortByUpdatedAtDesc(items)

	return items, nil
}

// Create stores the item under a freshly generated id.
// Any id supplied by the caller is discarded.
func (s *TodoService) Create(ctx context.Context, item todo.Item) (todo.Item, error) {
	now := s.now()

	item.ID = s.newID()
	item.CreatedAt = now
	item.UpdatedAt = now

	saved, err := s.store.Save(ctx, item)
	if err != nil {
		return todo.Item{}, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "item created", slog.String("id", saved.ID))

	return saved, nil
}

// Update replaces the item with the same id.
//
// The stored record is deleted under its old partition key before the new
// one is saved, so that a changed description moves the item. There is no
// compensation: if the save fails after the delete, the item is lost.
// Items without a description are rejected before anything is deleted.
func (s *TodoService) Update(ctx context.Context, item todo.Item) (todo.Item, error) {
	if item.ID == "" {
		return todo.Item{}, errors.WithStack(store.ErrNotFound)
	}

	// Reject keys the store would refuse before the previous version is deleted.
	if err := store.ValidateKey(item.ID, item.PartitionKey()); err != nil {
		return todo.Item{}, errors.WithStack(err)
	}

	existing, err := s.store.FindByID(ctx, item.ID)
	if err != nil {
		return todo.Item{}, errors.WithStack(err)
	}

	if err := s.store.DeleteByID(ctx, existing.ID, existing.PartitionKey()); err != nil {
		return todo.Item{}, errors.Wrapf(err, "could not remove previous version of item %s", existing.ID)
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = s.now()

	saved, err := s.store.Save(ctx, item)
	if err != nil {
		slog.ErrorContext(ctx, "item lost during update", slog.String("id", item.ID))
		return todo.Item{}, errors.Wrapf(err, "could not save item %s", item.ID)
	}

	slog.DebugContext(ctx, "item updated", slog.String("id", saved.ID))

	return saved, nil
}

// Delete removes the item with the given id.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := s.store.DeleteByID(ctx, id, existing.PartitionKey()); err != nil {
		return errors.WithStack(err)
	}

	slog.DebugContext(ctx, "item deleted", slog.String("id", id))

	return nil
}

// Home returns the home greeting with a fresh id.
func (s *TodoService) Home(ctx context.Context) todo.Greeting {
	return todo.Greeting{
		ID:      s.newID(),
		Content: HomeContent,
	}
}
