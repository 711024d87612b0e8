// Package storetest provides a conformance suite shared by every ItemStore backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/todo"
)

// TestItemStore runs the ItemStore contract against stores built by factory.
// Each case receives a fresh, empty store.
func TestItemStore(t *testing.T, factory func(t *testing.T) (store.ItemStore, error)) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, s store.ItemStore) error
	}

	var testCases []testCase = []testCase{
		{
			Name: "SaveThenFindByID",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				item := newItem("Buy milk")

				if _, err := s.Save(ctx, item); err != nil {
					return errors.WithStack(err)
				}

				found, err := findEventually(ctx, s, item.ID)
				if err != nil {
					return errors.WithStack(err)
				}

				if !found.Equal(item) {
					t.Errorf("found: expected %v, got %v", item, found)
				}

				return nil
			},
		},
		{
			Name: "FindByIDUnknown",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				_, err := s.FindByID(ctx, uuid.NewString())
				if !errors.Is(err, store.ErrNotFound) {
					t.Errorf("err: expected %v, got %v", store.ErrNotFound, err)
				}

				return nil
			},
		},
		{
			Name: "SaveReplacesSameKey",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				item := newItem("Water plants")

				if _, err := s.Save(ctx, item); err != nil {
					return errors.WithStack(err)
				}

				item.Finished = true
				item.UpdatedAt = item.UpdatedAt.Add(time.Minute)

				if _, err := s.Save(ctx, item); err != nil {
					return errors.WithStack(err)
				}

				items, err := s.FindAll(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(items); e != g {
					t.Fatalf("len(items): expected %d, got %d", e, g)
				}

				if !items[0].Finished {
					t.Errorf("items[0].Finished: expected true, got false")
				}

				return nil
			},
		},
		{
			Name: "SaveRejectsMissingKey",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				noID := newItem("Buy milk")
				noID.ID = ""

				if _, err := s.Save(ctx, noID); !errors.Is(err, store.ErrMissingID) {
					t.Errorf("err: expected %v, got %v", store.ErrMissingID, err)
				}

				noDescription := newItem("")

				if _, err := s.Save(ctx, noDescription); !errors.Is(err, store.ErrMissingPartitionKey) {
					t.Errorf("err: expected %v, got %v", store.ErrMissingPartitionKey, err)
				}

				return nil
			},
		},
		{
			Name: "FindAllEmpty",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				items, err := s.FindAll(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 0, len(items); e != g {
					t.Errorf("len(items): expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "FindAllAcrossPartitions",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				expected := map[string]todo.Item{}
				for _, description := range []string{"Buy milk", "Buy milk", "Call mom", "Pay rent"} {
					item := newItem(description)
					if _, err := s.Save(ctx, item); err != nil {
						return errors.WithStack(err)
					}
					expected[item.ID] = item
				}

				items, err := s.FindAll(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := len(expected), len(items); e != g {
					t.Fatalf("len(items): expected %d, got %d", e, g)
				}

				for _, item := range items {
					e, exists := expected[item.ID]
					if !exists {
						t.Errorf("unexpected item %v", item)
						continue
					}
					if !item.Equal(e) {
						t.Errorf("item %s: expected %v, got %v", item.ID, e, item)
					}
				}

				return nil
			},
		},
		{
			Name: "DeleteByID",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				item := newItem("Buy milk")

				if _, err := s.Save(ctx, item); err != nil {
					return errors.WithStack(err)
				}

				if err := s.DeleteByID(ctx, item.ID, item.PartitionKey()); err != nil {
					return errors.WithStack(err)
				}

				if err := waitGone(ctx, s, item.ID); err != nil {
					return errors.WithStack(err)
				}

				return nil
			},
		},
		{
			Name: "DeleteByIDUnknown",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				err := s.DeleteByID(ctx, uuid.NewString(), "Buy milk")
				if !errors.Is(err, store.ErrNotFound) {
					t.Errorf("err: expected %v, got %v", store.ErrNotFound, err)
				}

				return nil
			},
		},
		{
			Name: "DeleteByIDWrongPartition",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				item := newItem("Buy milk")

				if _, err := s.Save(ctx, item); err != nil {
					return errors.WithStack(err)
				}

				err := s.DeleteByID(ctx, item.ID, "Buy bread")
				if !errors.Is(err, store.ErrNotFound) {
					t.Errorf("err: expected %v, got %v", store.ErrNotFound, err)
				}

				if _, err := findEventually(ctx, s, item.ID); err != nil {
					t.Errorf("item should survive a delete on the wrong partition: %+v", err)
				}

				return nil
			},
		},
		{
			Name: "MovePartition",
			Run: func(t *testing.T, ctx context.Context, s store.ItemStore) error {
				original := newItem("Buy milk")

				if _, err := s.Save(ctx, original); err != nil {
					return errors.WithStack(err)
				}

				if err := s.DeleteByID(ctx, original.ID, original.PartitionKey()); err != nil {
					return errors.WithStack(err)
				}

				moved := original
				moved.Description = "Buy oat milk"
				moved.UpdatedAt = original.UpdatedAt.Add(time.Minute)

				if _, err := s.Save(ctx, moved); err != nil {
					return errors.WithStack(err)
				}

				items, err := s.FindAll(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(items); e != g {
					t.Fatalf("len(items): expected %d, got %d", e, g)
				}

				if e, g := "Buy oat milk", items[0].Description; e != g {
					t.Errorf("items[0].Description: expected %s, got %s", e, g)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			s, err := factory(t)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if err := tc.Run(t, ctx, s); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}

func newItem(description string) todo.Item {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return todo.Item{
		ID:          uuid.NewString(),
		Description: description,
		Owner:       "storetest",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// pollInterval spaces lookups made while waiting on eventually consistent backends.
const pollInterval = 50 * time.Millisecond

// findEventually retries FindByID until the item is visible or ctx expires.
func findEventually(ctx context.Context, s store.ItemStore, id string) (todo.Item, error) {
	for {
		item, err := s.FindByID(ctx, id)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return todo.Item{}, errors.WithStack(err)
		}

		select {
		case <-ctx.Done():
			return todo.Item{}, errors.Wrapf(err, "item %s never became visible", id)
		case <-time.After(pollInterval):
		}
	}
}

// waitGone retries FindByID until it reports ErrNotFound or ctx expires.
func waitGone(ctx context.Context, s store.ItemStore, id string) error {
	for {
		_, err := s.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return errors.WithStack(err)
		}

		select {
		case <-ctx.Done():
			return errors.Errorf("item %s still visible after delete", id)
		case <-time.After(pollInterval):
		}
	}
}
