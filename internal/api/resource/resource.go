// Package resource implements the backend endpoints on top of the REST client.
package resource

import (
	"context"
	"net/url"

	"github.com/dtroode/flashcards-client/internal/api/rest"
)

// Doer sends a request through the session-aware client.
type Doer interface {
	Do(ctx context.Context, req *rest.Request) (*rest.Response, error)
}

func doJSON[T any](ctx context.Context, d Doer, req *rest.Request) (T, error) {
	var out T
	resp, err := d.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func doNoContent(ctx context.Context, d Doer, req *rest.Request) error {
	_, err := d.Do(ctx, req)
	return err
}

func newJSON[T any](ctx context.Context, d Doer, method, path string, body any) (T, error) {
	req, err := rest.NewJSONRequest(method, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return doJSON[T](ctx, d, req)
}

func escape(id string) string {
	return url.PathEscape(id)
}
