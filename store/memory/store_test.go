package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/store/storetest"
	"github.com/jacentio/todolist/todo"
)

func TestStore(t *testing.T) {
	storetest.TestItemStore(t, func(t *testing.T) (store.ItemStore, error) {
		return New(), nil
	})
}

func TestStoreSaveMovesPartition(t *testing.T) {
	ctx := context.Background()
	s := New()

	item := todo.Item{ID: "abc", Description: "Buy milk"}
	if _, err := s.Save(ctx, item); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	item.Description = "Buy bread"
	if _, err := s.Save(ctx, item); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, s.Len(); e != g {
		t.Errorf("s.Len(): expected %d, got %d", e, g)
	}

	if err := s.DeleteByID(ctx, "abc", "Buy milk"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err: expected %v, got %v", store.ErrNotFound, err)
	}

	found, err := s.FindByID(ctx, "abc")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Buy bread", found.Description; e != g {
		t.Errorf("found.Description: expected %s, got %s", e, g)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item := todo.Item{ID: "item-" + strconv.Itoa(i), Description: "task"}
			if _, err := s.Save(ctx, item); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
			if _, err := s.FindAll(ctx); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		}()
	}
	wg.Wait()

	if e, g := 50, s.Len(); e != g {
		t.Errorf("s.Len(): expected %d, got %d", e, g)
	}
}
