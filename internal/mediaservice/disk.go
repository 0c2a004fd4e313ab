package mediaservice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage writes uploads into the public directory that is served as
// static files at baseURL.
type DiskStorage struct {
	dir     string
	baseURL string
}

func NewDiskStorage(dir, baseURL string) *DiskStorage {
	return &DiskStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskStorage) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create public directory: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	return s.baseURL + "/" + name, nil
}
