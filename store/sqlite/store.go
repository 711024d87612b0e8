// Package sqlite provides an ItemStore backed by a SQLite database through gorm.
package sqlite

import (
	"context"
	"sync"

	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/todo"
)

type Store struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
}

// Open opens the SQLite database at dsn with the pragmas the store expects.
func Open(dsn string, config *gorm.Config) (*gorm.DB, error) {
	if config == nil {
		config = &gorm.Config{}
	}

	db, err := gorm.Open(gormlite.Open(dsn), config)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA journal_mode=wal; PRAGMA busy_timeout=5000").Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return db, nil
}

// Save implements [store.ItemStore].
// An id lives in at most one partition: saving it under a new description
// replaces the previous row.
func (s *Store) Save(ctx context.Context, item todo.Item) (todo.Item, error) {
	if err := store.ValidateKey(item.ID, item.PartitionKey()); err != nil {
		return todo.Item{}, err
	}

	db, err := s.getDatabase(ctx)
	if err != nil {
		return todo.Item{}, errors.WithStack(err)
	}

	err = db.Clauses(clause.OnConflict{UpdateAll: true}).Create(fromItem(item)).Error
	if err != nil {
		return todo.Item{}, errors.Wrapf(err, "save item %s", item.ID)
	}

	return item, nil
}

// FindByID implements [store.ItemStore].
func (s *Store) FindByID(ctx context.Context, id string) (todo.Item, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return todo.Item{}, errors.WithStack(err)
	}

	var row Item

	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return todo.Item{}, store.ErrNotFound
		}

		return todo.Item{}, errors.WithStack(err)
	}

	return row.toItem(), nil
}

// FindAll implements [store.ItemStore].
func (s *Store) FindAll(ctx context.Context) ([]todo.Item, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var rows []*Item

	if err := db.Find(&rows).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	items := make([]todo.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toItem())
	}

	return items, nil
}

// DeleteByID implements [store.ItemStore].
func (s *Store) DeleteByID(ctx context.Context, id string, partitionKey string) error {
	if err := store.ValidateKey(id, partitionKey); err != nil {
		return err
	}

	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	result := db.Where("id = ? AND description = ?", id, partitionKey).Delete(&Item{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		getDatabase: createGetDatabase(db),
	}
}

var _ store.ItemStore = &Store{}

func createGetDatabase(db *gorm.DB) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			if err := db.AutoMigrate(&Item{}); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db.WithContext(ctx), nil
	}
}
