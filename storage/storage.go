// Package storage keeps named blobs (one serialized collection per name).
// Backends are interchangeable: callers only load, save or remove a whole
// collection at a time.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing is stored under the name.
var ErrNotFound = errors.New("storage: slot not found")

// Backend is a durable key-value store of whole collections.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
	Close() error
}
