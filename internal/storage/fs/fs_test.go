package fs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pudu/heartgate/internal/storage"
)

func TestPutGetRoundTrip(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, b.Put(ctx, "memories/1700000000000-a-b.png", data, "image/png"))

	got, contentType, err := b.Get(ctx, "memories/1700000000000-a-b.png")
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.Equal(t, "image/png", contentType)
}

func TestGetMissing(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, err = b.Get(context.Background(), "memories/nope.png")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "voices/1-note.mp3", []byte("x"), "audio/mpeg"))
	require.NoError(t, b.Delete(ctx, "voices/1-note.mp3"))

	err = b.Delete(ctx, "voices/1-note.mp3")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestResolveRejectsTraversal(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	bad := []string{
		"../outside.txt",
		"memories/../../etc/passwd",
		"memories//x",
		"a/..b/c",
	}
	for _, key := range bad {
		_, _, err := b.Get(ctx, key)
		require.Error(t, err, "key %q should be rejected", key)
		require.False(t, errors.Is(err, storage.ErrNotFound), "key %q must not read through", key)
	}
}

func TestListPrefix(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "memories/1-a.png", []byte("a"), "image/png"))
	require.NoError(t, b.Put(ctx, "memories/2-b.png", []byte("b"), "image/png"))
	require.NoError(t, b.Put(ctx, "voices/3-c.mp3", []byte("c"), "audio/mpeg"))

	keys, err := b.List(ctx, "memories/")
	require.NoError(t, err)
	require.Equal(t, []string{"memories/1-a.png", "memories/2-b.png"}, keys)
}

func TestContentTypeInference(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"memories/1-photo.jpg", "image/jpeg"},
		{"memories/1-photo.webp", "image/webp"},
		{"voices/1-note.m4a", "audio/mp4"},
		{"puzzle/config.json", "application/json"},
		{"memories/1-blob", "application/octet-stream"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, storage.ContentTypeForKey(tt.key), tt.key)
	}
}
