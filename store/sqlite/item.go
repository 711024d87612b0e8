package sqlite

import (
	"time"

	"github.com/jacentio/todolist/todo"
)

type Item struct {
	ID          string    `gorm:"primaryKey"`
	Description string    `gorm:"index;not null"`
	Owner       string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
	Finished    bool
}

func (Item) TableName() string {
	return "todo_items"
}

func fromItem(item todo.Item) *Item {
	return &Item{
		ID:          item.ID,
		Description: item.Description,
		Owner:       item.Owner,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
		Finished:    item.Finished,
	}
}

func (i *Item) toItem() todo.Item {
	return todo.Item{
		ID:          i.ID,
		Description: i.Description,
		Owner:       i.Owner,
		CreatedAt:   i.CreatedAt.UTC(),
		UpdatedAt:   i.UpdatedAt.UTC(),
		Finished:    i.Finished,
	}
}
