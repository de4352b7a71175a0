package blob_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdrive/campusdrive/internal/platform/blob"
	_ "github.com/campusdrive/campusdrive/testing"
)

func TestLocalStorePutListRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := blob.NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "img_abc", strings.NewReader("jpegdata"), 8, "image/jpeg"))

	data, err := os.ReadFile(filepath.Join(dir, "img_abc"))
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"img_abc"}, keys)

	assert.Equal(t, "/uploads/img_abc", store.URL("img_abc"))

	require.NoError(t, store.Remove(ctx, "img_abc"))
	keys, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLocalStoreRemoveMissingKeyIsNoError(t *testing.T) {
	store, err := blob.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	assert.NoError(t, store.Remove(context.Background(), "img_missing"))
}

func TestLocalStoreRejectsPathKeys(t *testing.T) {
	store, err := blob.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
		assert.Error(t, store.Put(ctx, key, strings.NewReader("x"), 1, "image/png"), "key %q", key)
	}
}
