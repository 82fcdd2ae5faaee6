// Package storage defines the durable blob store behind the content index.
// A Backend holds opaque blobs under slash-separated keys; which concrete
// implementation serves a deployment is an explicit configuration choice.
package storage

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrNotFound is returned by Get and Delete when no blob exists under the key.
var ErrNotFound = errors.New("storage: key not found")

// Backend is the minimal capability the content index needs from durable
// storage. Keys are namespaced by collection ("memories/...", "voices/...",
// "puzzle/...").
type Backend interface {
	// Put stores data under key, overwriting any previous blob.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns the blob and its content type, or ErrNotFound.
	Get(ctx context.Context, key string) (data []byte, contentType string, err error)
	// Delete removes the blob under key. Deleting a missing key returns ErrNotFound.
	Delete(ctx context.Context, key string) error
	// List returns all keys under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// ContentTypeForKey infers a content type from the key's extension. Used by
// backends that do not persist the type alongside the blob.
func ContentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
