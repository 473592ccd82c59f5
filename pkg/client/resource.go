package client

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is the CRUD endpoint set of one content collection.
type Resource[T any] struct {
	client *Client
	path   string
}

func newResource[T any](c *Client, name string) *Resource[T] {
	return &Resource[T]{client: c, path: "/api/" + name}
}

// List returns every row in the server's display order.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var row T
	err := r.client.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, &row)
	return row, err
}

func (r *Resource[T]) Create(ctx context.Context, row T) (T, error) {
	var created T
	err := r.client.do(ctx, http.MethodPost, r.path, row, &created)
	return created, err
}

// Update replaces the row with the given id.
func (r *Resource[T]) Update(ctx context.Context, id string, row T) (T, error) {
	var updated T
	err := r.client.do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), row, &updated)
	return updated, err
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
}
