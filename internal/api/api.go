// package api provides the HTTP API for the application
package api

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"

	"github.com/jacentio/todolist/internal/ratelimit"
	"github.com/jacentio/todolist/todo"
)

// TodoService defines the minimal interface needed by the API
type TodoService interface {
	// List returns all items, most recently updated first
	List(ctx context.Context) ([]todo.Item, error)

	// Get returns an item by ID
	Get(ctx context.Context, id string) (todo.Item, error)

	// Create stores a new item under a generated ID
	Create(ctx context.Context, item todo.Item) (todo.Item, error)

	// Update replaces an existing item
	Update(ctx context.Context, item todo.Item) (todo.Item, error)

	// Delete deletes an item
	Delete(ctx context.Context, id string) error

	// Home returns the home greeting
	Home(ctx context.Context) todo.Greeting
}

//go:embed static/*
var static embed.FS

// Paths served by the API.
const (
	TodoListPath = "/api/todolist"
	HomePath     = "/home"
	HealthPath   = "/healthz"
	MetricsPath  = "/metrics"
)

// Options configures the middleware chain wrapped around the routes.
type Options struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string
	RateLimit          *ratelimit.Options
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Logger:             slog.Default(),
		CORSAllowedOrigins: []string{"*"},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func WithCORSAllowedOrigins(origins ...string) OptionFunc {
	return func(opts *Options) {
		opts.CORSAllowedOrigins = origins
	}
}

func WithRateLimit(rateLimit ratelimit.Options) OptionFunc {
	return func(opts *Options) {
		opts.RateLimit = &rateLimit
	}
}

// NewHandler creates the application handler with all routes and middlewares configured
func NewHandler(todoService TodoService, funcs ...OptionFunc) http.Handler {
	opts := NewOptions(funcs...)

	mux := http.NewServeMux()
	registerRoutes(mux, NewTodoHandler(todoService))

	var handler http.Handler = mux

	if opts.RateLimit != nil {
		rateLimit := *opts.RateLimit
		rateLimit.OnLimited = func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
		handler = ratelimit.Middleware(rateLimit)(handler)
	}

	handler = cors.New(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Location"},
	}).Handler(handler)

	handler = recovererMiddleware(handler)
	handler = sloghttp.New(opts.Logger)(handler)

	return handler
}

// registerRoutes configures all API routes
func registerRoutes(mux *http.ServeMux, h *TodoHandler) {
	mux.Handle("GET "+TodoListPath+"/{id}", instrument("get", h.GetItem))
	mux.Handle("GET "+TodoListPath, instrument("list", h.ListItems))
	mux.Handle("POST "+TodoListPath, instrument("create", h.CreateItem))
	mux.Handle("PUT "+TodoListPath, instrument("update", h.UpdateItem))
	mux.Handle("DELETE "+TodoListPath+"/{id}", instrument("delete", h.DeleteItem))
	mux.Handle("GET "+HomePath, instrument("home", h.Home))

	mux.HandleFunc("GET "+HealthPath, healthHandler)
	mux.Handle("GET "+MetricsPath, promhttp.Handler())

	pages, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /{$}", http.FileServerFS(pages))
}

// healthHandler handles the health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
