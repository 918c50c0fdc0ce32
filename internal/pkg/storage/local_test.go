package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	const path = "photos/ab/test.txt"

	require.NoError(t, store.Save(ctx, path, strings.NewReader("before and after")))

	rc, err := store.Get(ctx, path)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "before and after", string(content))
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	const path = "photos/cd/gone.txt"

	require.NoError(t, store.Save(ctx, path, strings.NewReader("x")))
	require.NoError(t, store.Delete(ctx, path))

	_, err = store.Get(ctx, path)
	assert.Error(t, err)

	// Deleting a missing blob is not an error.
	assert.NoError(t, store.Delete(ctx, path))
}

func TestLocalStorageGetMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "photos/ef/nope.jpg")
	assert.Error(t, err)
}
