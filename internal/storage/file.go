package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileStore keeps one JSON document per key inside a directory, the way an
// application-settings store would.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates a file-backed store rooted at dir on the OS filesystem.
func NewFileStore(dir string) (*FileStore, error) {
	return NewFileStoreFs(afero.NewOsFs(), dir)
}

// NewFileStoreFs creates a file-backed store on an arbitrary afero filesystem.
func NewFileStoreFs(fs afero.Fs, dir string) (*FileStore, error) {
	if fs == nil {
		return nil, fmt.Errorf("%w: fs", ErrNilValue)
	}
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

// Dir returns the directory holding the store's files.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) path(key string) (string, error) {
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Get implements BlobStore.
func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(ctx, key); err != nil {
		return nil, err
	}
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(f.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// Put implements BlobStore. The value is written to a temporary file first and
// renamed into place so a crash never leaves a half written document.
func (f *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(ctx, key); err != nil {
		return err
	}
	p, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(f.fs, f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = f.fs.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = f.fs.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := f.fs.Rename(tmpName, p); err != nil {
		_ = f.fs.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", p, err)
	}
	return nil
}

// Close implements BlobStore. Files need no cleanup.
func (f *FileStore) Close() error {
	return nil
}
