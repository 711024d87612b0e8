package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jacentio/todolist/internal/metrics"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the wrapped writer to http.ResponseController
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// instrument records request count and duration for the named operation
func instrument(operation string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		metrics.HTTPRequestsTotal.With(prometheus.Labels{
			metrics.LabelOperation: operation,
			metrics.LabelStatus:    strconv.Itoa(ww.statusCode),
		}).Inc()

		metrics.HTTPRequestDuration.With(prometheus.Labels{
			metrics.LabelOperation: operation,
		}).Observe(time.Since(start).Seconds())
	})
}

// recovererMiddleware recovers from panics and logs the error
func recovererMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}

				stack := debug.Stack()

				slog.ErrorContext(r.Context(), "recovered from panic",
					slog.String("error", fmt.Sprintf("%v", err)),
					slog.String("stack", string(stack)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				writeError(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
