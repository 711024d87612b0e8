package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/jacentio/todolist/todo"
)

const todoListPath = "/api/todolist"

// Get returns the item with the given id.
func (c *Client) Get(ctx context.Context, id string) (todo.Item, error) {
	var item todo.Item
	if err := c.jsonRequest(ctx, http.MethodGet, todoListPath+"/"+url.PathEscape(id), nil, &item); err != nil {
		return todo.Item{}, errors.WithStack(err)
	}
	return item, nil
}

// List returns every item, most recently updated first.
func (c *Client) List(ctx context.Context) ([]todo.Item, error) {
	var items []todo.Item
	if err := c.jsonRequest(ctx, http.MethodGet, todoListPath, nil, &items); err != nil {
		return nil, errors.WithStack(err)
	}
	return items, nil
}

// Create stores item and returns it with its server-assigned id and timestamps.
func (c *Client) Create(ctx context.Context, item todo.Item) (todo.Item, error) {
	var created todo.Item
	if err := c.jsonRequest(ctx, http.MethodPost, todoListPath, item, &created); err != nil {
		return todo.Item{}, errors.WithStack(err)
	}
	return created, nil
}

// Update replaces the item with the same id and returns the stored version.
func (c *Client) Update(ctx context.Context, item todo.Item) (todo.Item, error) {
	var updated todo.Item
	if err := c.jsonRequest(ctx, http.MethodPut, todoListPath, item, &updated); err != nil {
		return todo.Item{}, errors.WithStack(err)
	}
	return updated, nil
}

// Delete removes the item with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.jsonRequest(ctx, http.MethodDelete, todoListPath+"/"+url.PathEscape(id), nil, nil); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Home calls the home endpoint.
func (c *Client) Home(ctx context.Context) (todo.Greeting, error) {
	var greeting todo.Greeting
	if err := c.jsonRequest(ctx, http.MethodGet, "/home", nil, &greeting); err != nil {
		return todo.Greeting{}, errors.WithStack(err)
	}
	return greeting, nil
}
