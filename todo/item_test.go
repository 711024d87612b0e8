package todo_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jacentio/todolist/todo"
)

func TestItem_Equal(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	base := todo.Item{
		ID:          "id-1",
		Description: "Buy milk",
		Owner:       "A",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tests := []struct {
		name     string
		other    func(todo.Item) todo.Item
		expected bool
	}{
		{"identical", func(i todo.Item) todo.Item { return i }, true},
		{"same instant other zone", func(i todo.Item) todo.Item {
			i.CreatedAt = i.CreatedAt.In(time.FixedZone("CET", 3600))
			return i
		}, true},
		{"different id", func(i todo.Item) todo.Item { i.ID = "id-2"; return i }, false},
		{"different description", func(i todo.Item) todo.Item { i.Description = "Buy bread"; return i }, false},
		{"different owner", func(i todo.Item) todo.Item { i.Owner = "B"; return i }, false},
		{"different createdAt", func(i todo.Item) todo.Item { i.CreatedAt = i.CreatedAt.Add(time.Second); return i }, false},
		{"different updatedAt", func(i todo.Item) todo.Item { i.UpdatedAt = i.UpdatedAt.Add(time.Second); return i }, false},
		{"different finished", func(i todo.Item) todo.Item { i.Finished = true; return i }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other(base)); got != tt.expected {
				t.Errorf("expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestItem_PartitionKey(t *testing.T) {
	item := todo.Item{ID: "id-1", Description: "Buy milk"}
	if item.PartitionKey() != "Buy milk" {
		t.Errorf("expected partition key 'Buy milk', got %q", item.PartitionKey())
	}
}

func TestItem_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(todo.Item{ID: "id-1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, field := range []string{`"id"`, `"description"`, `"owner"`, `"createdAt"`, `"updatedAt"`, `"finished"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in %s", field, data)
		}
	}
}

func TestItem_FinishedDefaultsToFalse(t *testing.T) {
	var item todo.Item
	if err := json.Unmarshal([]byte(`{"description":"Buy milk","owner":"A"}`), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Finished {
		t.Error("expected finished to default to false")
	}
}
