package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jacentio/todolist/internal/api"
	"github.com/jacentio/todolist/internal/config"
	"github.com/jacentio/todolist/internal/ratelimit"
	"github.com/jacentio/todolist/internal/server"
	"github.com/jacentio/todolist/internal/service"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*server.Server, error) {
	handler, err := NewHTTPHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure http handler from config")
	}

	options := []server.OptionFunc{
		server.WithAddress(conf.HTTP.Address),
		server.WithShutdownTimeout(conf.HTTP.ShutdownTimeout),
		server.WithMount("/", handler),
	}

	return server.NewServer(options...), nil
}

// NewHTTPHandlerFromConfig builds the API handler, shared by the HTTP server
// and the Lambda entrypoint.
func NewHTTPHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	itemStore, err := getItemStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create item store from config")
	}

	todoService := service.NewTodoService(itemStore)

	options := []api.OptionFunc{
		api.WithLogger(slog.Default()),
		api.WithCORSAllowedOrigins(conf.HTTP.CORSAllowedOrigins...),
	}

	if rl := conf.HTTP.RateLimit; rl.Enabled {
		options = append(options, api.WithRateLimit(ratelimit.Options{
			TrustHeaders: rl.TrustHeaders,
			Interval:     rl.Interval,
			MaxBurst:     rl.MaxBurst,
			CacheSize:    rl.CacheSize,
			CacheTTL:     rl.CacheTTL,
		}))
	}

	return api.NewHandler(todoService, options...), nil
}
