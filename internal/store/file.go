package store

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps each collection in <dir>/<kind>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+".json")
}

// Load reads the document of kind. A missing or blank file loads as nil.
func (s *FileStore) Load(ctx context.Context, kind Kind) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, storageError(kind, "load", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	return data, nil
}

// Save overwrites the document of kind. The data is written to a temporary
// file first and renamed over the target.
func (s *FileStore) Save(ctx context.Context, kind Kind, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return storageError(kind, "save", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+string(kind)+"-*.json")
	if err != nil {
		return storageError(kind, "save", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return storageError(kind, "save", err)
	}

	if err := tmp.Close(); err != nil {
		return storageError(kind, "save", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return storageError(kind, "save", err)
	}

	return storageError(kind, "save", os.Rename(tmp.Name(), s.path(kind)))
}
