package storage

import (
	"context"
	"fmt"
	"path/filepath"
)

// Supported backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Backends lists every supported backend name.
var Backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}

// Options selects and configures a BlobStore backend.
type Options struct {
	Backend string
	// Path is the data directory for the file backend and the database file for sqlite.
	Path  string
	Redis RedisOptions
}

// Open builds the configured BlobStore. SQLite databases are migrated before
// they are returned.
func Open(ctx context.Context, opts Options) (BlobStore, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil

	case BackendFile, "":
		return NewFileStore(opts.Path)

	case BackendSQLite:
		path := opts.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "accountant.db")
		}
		store, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil

	case BackendRedis:
		return NewRedisStore(ctx, opts.Redis)

	default:
		return nil, fmt.Errorf("unknown storage backend %q (want one of %v)", opts.Backend, Backends)
	}
}
