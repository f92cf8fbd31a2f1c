package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "runs/a.trace", []byte("hello")))

	blob, err := store.Open(ctx, "runs/a.trace")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(5), blob.Size())

	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCreateVisibility(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	w, err := store.Create(ctx, "runs/b.trace")
	require.NoError(t, err)

	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)

	// Not visible until Close.
	_, err = store.Open(ctx, "runs/b.trace")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())

	blob, err := store.Open(ctx, "runs/b.trace")
	require.NoError(t, err)
	defer blob.Close()

	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("partial"), data)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "runs/a", nil))
	require.NoError(t, store.Put(ctx, "runs/b", nil))
	require.NoError(t, store.Put(ctx, "other/c", nil))

	names, err := store.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/a", "runs/b"}, names)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "a", []byte("x")))
	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Open(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBlobReadRange(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a", []byte("0123456789")))

	blob, err := store.Open(ctx, "a")
	require.NoError(t, err)
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 2, 4)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("2345"), data)
}
