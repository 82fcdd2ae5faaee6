// Package fs implements the Backend over a local directory, mirroring the
// uploads/<collection>/<file> layout of a filesystem-plus-JSON-index store.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pudu/heartgate/internal/storage"
)

// Backend stores each blob as a file under baseDir. Keys are slash-separated
// relative paths; content type is inferred from the extension on read.
type Backend struct {
	baseDir string
}

// New creates the backend rooted at baseDir, creating it if needed.
func New(baseDir string) (*Backend, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base dir: %w", err)
	}
	return &Backend{baseDir: abs}, nil
}

// resolve maps a key to an absolute path and rejects anything that would
// escape the base directory.
func (b *Backend) resolve(key string) (string, error) {
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || strings.Contains(segment, "..") {
			return "", fmt.Errorf("invalid key %q", key)
		}
	}
	abs := filepath.Join(b.baseDir, filepath.FromSlash(key))
	if !strings.HasPrefix(abs, b.baseDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("key %q escapes base dir", key)
	}
	return abs, nil
}

func (b *Backend) Put(ctx context.Context, key string, data []byte, contentType string) error {
	abs, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, string, error) {
	abs, err := b.resolve(key)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, storage.ContentTypeForKey(key), nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	abs, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(b.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.baseDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk base dir: %w", err)
	}
	return keys, nil
}
