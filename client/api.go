package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// StatusError is returned when the API answers with a non 2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected response code %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected response code %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, statusCode int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == statusCode
}

func (c *Client) request(ctx context.Context, method string, path string, body any) (*http.Response, error) {
	url := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), reader)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		defer res.Body.Close()

		statusErr := &StatusError{StatusCode: res.StatusCode}

		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&errResp); err == nil {
			statusErr.Message = errResp.Error
		}

		return nil, errors.WithStack(statusErr)
	}

	return res, nil
}

func (c *Client) jsonRequest(ctx context.Context, method string, path string, body any, result any) error {
	res, err := c.request(ctx, method, path, body)
	if err != nil {
		return errors.WithStack(err)
	}

	defer res.Body.Close()

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
