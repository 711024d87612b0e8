// Package lambdaproxy serves API Gateway HTTP API (payload v2) events with a net/http handler.
package lambdaproxy

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// Handler converts API Gateway events to HTTP requests and back.
type Handler struct {
	handler http.Handler
	logger  *slog.Logger
}

// NewHandler creates a new proxy handler.
func NewHandler(handler http.Handler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		handler: handler,
		logger:  logger,
	}
}

// HandleRequest serves a single event.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleRequest(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req, err := NewRequest(ctx, event)
	if err != nil {
		h.logger.ErrorContext(ctx, "could not convert event",
			slog.String("requestID", event.RequestContext.RequestID),
			slogx.Error(err),
		)
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"bad request"}`,
		}, nil
	}

	rw := newResponseWriter()
	h.handler.ServeHTTP(rw, req)

	return rw.toResponse(), nil
}

// NewRequest builds the HTTP request described by event.
func NewRequest(ctx context.Context, event events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}
	if path == "" {
		path = "/"
	}

	u := &url.URL{
		Path:     path,
		RawQuery: event.RawQueryString,
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		u.Path = unescaped
		u.RawPath = path
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, errors.Wrap(err, "could not decode base64 body")
		}
		body = decoded
	}

	method := event.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for name, value := range event.Headers {
		req.Header.Set(name, value)
	}
	if len(event.Cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(event.Cookies, "; "))
	}

	req.Host = event.RequestContext.DomainName
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}

	if event.RequestContext.HTTP.SourceIP != "" {
		req.RemoteAddr = event.RequestContext.HTTP.SourceIP
	}
	req.RequestURI = u.RequestURI()

	return req, nil
}

type responseWriter struct {
	header     http.Header
	body       bytes.Buffer
	statusCode int
}

func newResponseWriter() *responseWriter {
	return &responseWriter{
		header: http.Header{},
	}
}

func (rw *responseWriter) Header() http.Header {
	return rw.header
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.body.Write(b)
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode != 0 {
		return
	}
	rw.statusCode = code
}

func (rw *responseWriter) toResponse() events.APIGatewayV2HTTPResponse {
	statusCode := rw.statusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	res := events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    make(map[string]string, len(rw.header)),
	}

	for name, values := range rw.header {
		if name == "Set-Cookie" {
			res.Cookies = append(res.Cookies, values...)
			continue
		}
		res.Headers[name] = strings.Join(values, ",")
	}

	body := rw.body.Bytes()
	if utf8.Valid(body) {
		res.Body = string(body)
	} else {
		res.Body = base64.StdEncoding.EncodeToString(body)
		res.IsBase64Encoded = true
	}

	return res
}
