package storage

import (
	"context"
	"io"
)

// Storage reads scanned upload objects written by the uploader service.
// The frontend never writes objects itself; it only fetches them for
// forwarding to the backend and deletes them afterwards.
type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
