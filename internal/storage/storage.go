// Package storage provides the device-local key-value store the cart and
// order history persist into. Values are JSON blobs; keys are namespaced
// with the storefront prefix.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Key namespaces a storage key.
func Key(name string) string {
	return "naswasoko:" + name
}

// Store is a scoped key-value side effect: components read from it at
// startup and write after each change. It carries no concurrency
// contract of its own.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
