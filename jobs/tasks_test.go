package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdrive/campusdrive/internal/platform/blob"
	"github.com/campusdrive/campusdrive/jobs"
	_ "github.com/campusdrive/campusdrive/testing"
)

type staticKeys []string

func (s staticKeys) PhotoKeys(ctx context.Context) ([]string, error) {
	return s, nil
}

func TestPhotoSweepRemovesOrphans(t *testing.T) {
	store, err := blob.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "img_kept", strings.NewReader("a"), 1, "image/jpeg"))
	require.NoError(t, store.Put(ctx, "img_orphan", strings.NewReader("b"), 1, "image/jpeg"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := jobs.HandlePhotoSweep(staticKeys{"img_kept"}, store, logger)

	task, err := jobs.NewPhotoSweepTask(time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, handler(ctx, task))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"img_kept"}, keys)
}

func TestPhotoSweepKeepsEverythingReferenced(t *testing.T) {
	store, err := blob.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "img_a", strings.NewReader("a"), 1, "image/jpeg"))
	require.NoError(t, store.Put(ctx, "img_b", strings.NewReader("b"), 1, "image/jpeg"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := jobs.HandlePhotoSweep(staticKeys{"img_a", "img_b"}, store, logger)

	task, err := jobs.NewPhotoSweepTask(time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, handler(ctx, task))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}
