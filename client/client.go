// Package client is a Go client for the to-do list HTTP API.
package client

import (
	"net/http"
	"net/url"
)

// Client calls the to-do list HTTP API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a client; without options it targets http://localhost:8080.
func New(funcs ...OptionFunc) *Client {
	opts := NewOptions(funcs...)
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
	}
}
