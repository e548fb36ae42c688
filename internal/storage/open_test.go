package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		check   func(t *testing.T, store BlobStore)
		name    string
		opts    Options
		wantErr string
	}{
		{
			name: "memory",
			opts: Options{Backend: BackendMemory},
			check: func(t *testing.T, store BlobStore) {
				t.Helper()
				if _, ok := store.(*MemoryStore); !ok {
					t.Errorf("got %T, want *MemoryStore", store)
				}
			},
		},
		{
			name: "file is the default",
			opts: Options{Path: filepath.Join(dir, "files")},
			check: func(t *testing.T, store BlobStore) {
				t.Helper()
				if _, ok := store.(*FileStore); !ok {
					t.Errorf("got %T, want *FileStore", store)
				}
			},
		},
		{
			name: "sqlite in directory",
			opts: Options{Backend: BackendSQLite, Path: filepath.Join(dir, "db")},
			check: func(t *testing.T, store BlobStore) {
				t.Helper()
				s, ok := store.(*SQLiteStore)
				if !ok {
					t.Fatalf("got %T, want *SQLiteStore", store)
				}
				if filepath.Base(s.Path()) != "accountant.db" {
					t.Errorf("Path() = %s, want accountant.db in directory", s.Path())
				}
				version, err := s.SchemaVersion(context.Background())
				if err != nil || version != ExpectedSchemaVersion {
					t.Errorf("schema version = %d, %v", version, err)
				}
			},
		},
		{
			name: "sqlite explicit file",
			opts: Options{Backend: BackendSQLite, Path: filepath.Join(dir, "custom.sqlite")},
			check: func(t *testing.T, store BlobStore) {
				t.Helper()
				if s, ok := store.(*SQLiteStore); !ok || filepath.Base(s.Path()) != "custom.sqlite" {
					t.Errorf("unexpected store %T", store)
				}
			},
		},
		{
			name: "redis",
			opts: Options{Backend: BackendRedis, Redis: RedisOptions{Addr: mr.Addr()}},
			check: func(t *testing.T, store BlobStore) {
				t.Helper()
				if _, ok := store.(*RedisStore); !ok {
					t.Errorf("got %T, want *RedisStore", store)
				}
			},
		},
		{
			name:    "unknown backend",
			opts:    Options{Backend: "etcd"},
			wantErr: "unknown storage backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(context.Background(), tt.opts)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Open error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer func() { _ = store.Close() }()
			tt.check(t, store)
		})
	}
}
