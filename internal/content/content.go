// Package content implements the index service over memory and voice-note
// collections plus the puzzle image configuration. It owns identity
// derivation, dedup and ordering; durable bytes live behind storage.Backend.
package content

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a rejected upload (missing file, wrong MIME type).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a missing item or never-set puzzle config.
	ErrNotFound = errors.New("not found")
)

// Collection identifies one content collection and the MIME family it accepts.
type Collection struct {
	Name       string // storage namespace, ex: "memories"
	MIMEPrefix string // accepted Content-Type prefix, ex: "image/"
}

var (
	Memories = Collection{Name: "memories", MIMEPrefix: "image/"}
	Voices   = Collection{Name: "voices", MIMEPrefix: "audio/"}
)

// indexKey is the backend key of a collection's authoritative index.
func (c Collection) indexKey() string {
	return c.Name + "/index.json"
}

// Item is one entry of a collection. ID is derived from the storage key
// (the final segment of URL), never assigned independently.
type Item struct {
	ID        string `json:"id,omitempty"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds
	Caption   string `json:"caption,omitempty"`
	Title     string `json:"title,omitempty"`
}

// PuzzleConfig points at the current puzzle image. UpdatedAt doubles as a
// cache-busting version for the client.
type PuzzleConfig struct {
	URL       string `json:"url"`
	UpdatedAt int64  `json:"updatedAt"` // unix milliseconds
}

const (
	// puzzlePrefix namespaces uploaded puzzle images; history is retained,
	// the config pointer decides which one is current.
	puzzlePrefix = "puzzle/"
	// puzzleConfigKey is the backend key of the config pointer.
	puzzleConfigKey = "puzzle/config.json"
	// blobRoutePrefix turns a storage key into a servable URL.
	blobRoutePrefix = "/blobs/"
)

// URLForKey maps a storage key to the URL the blob handler serves it under.
func URLForKey(key string) string {
	return blobRoutePrefix + key
}

// KeyForURL reverses URLForKey. It fails on URLs that were not produced by
// this service (external storage URLs from an older deployment, say).
func KeyForURL(url string) (string, error) {
	if len(url) <= len(blobRoutePrefix) || url[:len(blobRoutePrefix)] != blobRoutePrefix {
		return "", fmt.Errorf("url %q is not a blob url", url)
	}
	return url[len(blobRoutePrefix):], nil
}
