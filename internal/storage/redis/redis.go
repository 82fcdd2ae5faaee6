// Package redis implements the Backend on a Redis server. Each blob is a
// hash with data and content_type fields; a companion set tracks all keys so
// List doesn't have to SCAN the whole keyspace.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pudu/heartgate/internal/storage"
)

const (
	fieldData        = "data"
	fieldContentType = "content_type"
)

type Backend struct {
	client *goredis.Client
}

func New(client *goredis.Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Put(ctx context.Context, key string, data []byte, contentType string) error {
	pipe := b.client.TxPipeline()
	pipe.HSet(ctx, BlobKey(key), fieldData, data, fieldContentType, contentType)
	pipe.SAdd(ctx, KeyAllBlobs, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store blob %s: %w", key, err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, string, error) {
	vals, err := b.client.HMGet(ctx, BlobKey(key), fieldData, fieldContentType).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	if len(vals) != 2 || vals[0] == nil {
		return nil, "", storage.ErrNotFound
	}

	data, ok := vals[0].(string)
	if !ok {
		return nil, "", fmt.Errorf("unexpected data type for blob %s", key)
	}
	contentType, _ := vals[1].(string)
	if contentType == "" {
		contentType = storage.ContentTypeForKey(key)
	}
	return []byte(data), contentType, nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	removed, err := b.client.Del(ctx, BlobKey(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	if err := b.client.SRem(ctx, KeyAllBlobs, key).Err(); err != nil {
		return fmt.Errorf("failed to untrack blob %s: %w", key, err)
	}
	if removed == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	all, err := b.client.SMembers(ctx, KeyAllBlobs).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}

	keys := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
