package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Read when nothing is stored under the key.
var ErrNotFound = errors.New("storage: not found")

// Storage abstracts whole-object reads and writes under a key.
// The JSON message store sits on top of it; tests swap in a fake.
type Storage interface {
	// Read returns the full contents stored under key.
	Read(ctx context.Context, key string) ([]byte, error)

	// Save replaces the contents under key, creating parent directories
	// as needed. Readers see either the old or the new contents.
	Save(ctx context.Context, key string, data io.Reader) error

	// Ping reports whether the storage root is usable.
	Ping(ctx context.Context) error
}
