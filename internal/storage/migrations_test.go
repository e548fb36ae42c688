package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMigrate_FreshDatabase(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database version = %d, want 0", version)
	}

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	version, _ = store.SchemaVersion(ctx)
	if version != ExpectedSchemaVersion {
		t.Errorf("version after migrate = %d, want %d", version, ExpectedSchemaVersion)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

func TestMigrate_UpdatedAtIsSet(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Put(ctx, "k", []byte("[]")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var count int
	err := store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blobs WHERE key = 'k' AND updated_at IS NOT NULL`).Scan(&count)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("updated_at not recorded")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	if err := first.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if err := first.Put(ctx, DefaultKey, []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	_ = first.Close()

	second, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer func() { _ = second.Close() }()

	got, err := second.Get(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Get = %q, want []", got)
	}
	if second.Path() != dbPath {
		t.Errorf("Path() = %s, want %s", second.Path(), dbPath)
	}
}
