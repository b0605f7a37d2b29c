package storage

import (
	"context"
)

// Sink defines where rendered charts, pages and snapshots are written
type Sink interface {
	// Close closes the sink
	Close() error

	// StoreFile stores a file under name and returns its location
	StoreFile(ctx context.Context, name string, data []byte) (string, error)

	// GetFile retrieves a stored file
	GetFile(ctx context.Context, name string) ([]byte, error)

	// List lists stored file names under prefix, sorted
	List(ctx context.Context, prefix string) ([]string, error)
}
