package model

import (
	"context"
	"io"
)

// DocumentSource provides document payloads stored outside the local filesystem.
type DocumentSource interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}
