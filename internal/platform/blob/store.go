// Package blob abstracts photo storage behind a small key/value object
// interface. Keys are opaque generated names, never client-supplied paths.
package blob

import (
	"context"
	"io"
)

// Store persists uploaded objects under generated keys.
type Store interface {
	// Put writes the object. size may be -1 when unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Remove deletes the object; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// List returns all stored keys.
	List(ctx context.Context) ([]string, error)
	// URL resolves the key to a URL the frontend can fetch.
	URL(key string) string
}
