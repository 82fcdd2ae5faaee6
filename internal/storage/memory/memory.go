// Package memory provides an in-process Backend. It backs tests and local
// development where nothing should touch disk or the network.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pudu/heartgate/internal/storage"
)

type blob struct {
	data        []byte
	contentType string
}

// Backend stores blobs in a map guarded by a RWMutex.
type Backend struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func New() *Backend {
	return &Backend{
		blobs: make(map[string]blob),
	}
}

func (b *Backend) Put(ctx context.Context, key string, data []byte, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	b.blobs[key] = blob{data: cp, contentType: contentType}
	return nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bl, ok := b.blobs[key]
	if !ok {
		return nil, "", storage.ErrNotFound
	}
	cp := make([]byte, len(bl.data))
	copy(cp, bl.data)
	return cp, bl.contentType, nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(b.blobs, key)
	return nil
}

func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.blobs))
	for k := range b.blobs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
