// Package server runs the HTTP server until its context is canceled.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type Server struct {
	opts *Options
}

func NewServer(funcs ...OptionFunc) *Server {
	return &Server{
		opts: NewOptions(funcs...),
	}
}

// Handler returns the handler serving every mount.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for prefix, handler := range s.opts.Mounts {
		mux.Handle(prefix, handler)
	}
	return mux
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return errors.Wrapf(err, "could not listen on '%s'", s.opts.Address)
	}

	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	serveErr := make(chan error, 1)

	go func() {
		slog.InfoContext(ctx, "http server listening", slog.String("address", listener.Addr().String()))
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- errors.WithStack(err)
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()

	slog.InfoContext(ctx, "shutting down http server")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "could not shutdown http server gracefully", slogx.Error(err))
		return errors.WithStack(err)
	}

	return <-serveErr
}
