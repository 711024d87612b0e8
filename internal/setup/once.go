package setup

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/jacentio/todolist/internal/config"
)

// createFromConfigOnce memoizes factory for a given configuration.
func createFromConfigOnce[T any](factory func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		mu      sync.Mutex
		results = map[*config.Config]T{}
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		mu.Lock()
		defer mu.Unlock()

		if value, exists := results[conf]; exists {
			return value, nil
		}

		value, err := factory(ctx, conf)
		if err != nil {
			return *new(T), errors.WithStack(err)
		}

		results[conf] = value

		return value, nil
	}
}
