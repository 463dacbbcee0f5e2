package storage

import (
	"context"
	"io"
)

// Storage holds contract documents, THF attachments and archived import
// workbooks.
type Storage interface {
	Upload(ctx context.Context, key string, data io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
