package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/pudu/heartgate/internal/storage"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client)
}

func TestPutGetRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	data := []byte{0x00, 0x01, 0xff, 0x42}
	require.NoError(t, b.Put(ctx, "memories/1-a.png", data, "image/png"))

	got, contentType, err := b.Get(ctx, "memories/1-a.png")
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.Equal(t, "image/png", contentType)
}

func TestGetMissing(t *testing.T) {
	b := newTestBackend(t)

	_, _, err := b.Get(context.Background(), "memories/nope.png")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOverwrite(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "puzzle/current.png", []byte("v1"), "image/png"))
	require.NoError(t, b.Put(ctx, "puzzle/current.png", []byte("v2"), "image/png"))

	got, _, err := b.Get(ctx, "puzzle/current.png")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), got)

	keys, err := b.List(ctx, "puzzle/")
	require.NoError(t, err)
	require.Equal(t, []string{"puzzle/current.png"}, keys)
}

func TestDelete(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "voices/1-note.mp3", []byte("x"), "audio/mpeg"))
	require.NoError(t, b.Delete(ctx, "voices/1-note.mp3"))

	_, _, err := b.Get(ctx, "voices/1-note.mp3")
	require.ErrorIs(t, err, storage.ErrNotFound)

	keys, err := b.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, keys)

	require.ErrorIs(t, b.Delete(ctx, "voices/1-note.mp3"), storage.ErrNotFound)
}

func TestListPrefix(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "memories/2-b.png", []byte("b"), "image/png"))
	require.NoError(t, b.Put(ctx, "memories/1-a.png", []byte("a"), "image/png"))
	require.NoError(t, b.Put(ctx, "voices/3-c.mp3", []byte("c"), "audio/mpeg"))

	keys, err := b.List(ctx, "memories/")
	require.NoError(t, err)
	require.Equal(t, []string{"memories/1-a.png", "memories/2-b.png"}, keys)
}
