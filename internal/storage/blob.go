package storage

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by BlobStore.Get when nothing is stored under the key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrCorruptData is returned when a stored value cannot be decoded.
	ErrCorruptData = errors.New("stored data is corrupt")
	// ErrClosed is returned when a store is used after Close.
	ErrClosed = errors.New("store is closed")
)

// BlobStore is a small key-value store holding opaque values.
// Put overwrites any previous value under the same key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
