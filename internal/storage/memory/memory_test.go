package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pudu/heartgate/internal/storage"
)

func TestRoundTrip(t *testing.T) {
	b := New()
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "memories/1-a.png", []byte("abc"), "image/png"))

	got, contentType, err := b.Get(ctx, "memories/1-a.png")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)
	require.Equal(t, "image/png", contentType)

	require.NoError(t, b.Delete(ctx, "memories/1-a.png"))
	_, _, err = b.Get(ctx, "memories/1-a.png")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.ErrorIs(t, b.Delete(ctx, "memories/1-a.png"), storage.ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	b := New()
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "k", []byte("abc"), "text/plain"))
	got, _, err := b.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'z'

	again, _, err := b.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}

func TestListSortedByPrefix(t *testing.T) {
	b := New()
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "voices/2-b.mp3", []byte("b"), "audio/mpeg"))
	require.NoError(t, b.Put(ctx, "voices/1-a.mp3", []byte("a"), "audio/mpeg"))
	require.NoError(t, b.Put(ctx, "memories/1-a.png", []byte("a"), "image/png"))

	keys, err := b.List(ctx, "voices/")
	require.NoError(t, err)
	require.Equal(t, []string{"voices/1-a.mp3", "voices/2-b.mp3"}, keys)
}
