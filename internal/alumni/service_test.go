package alumni

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdrive/campusdrive/internal/platform/blob"
	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
	_ "github.com/campusdrive/campusdrive/testing"
)

type mockRepository struct {
	items map[string]*Alumnus
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[string]*Alumnus)}
}

func (m *mockRepository) List(ctx context.Context) ([]Alumnus, error) {
	out := []Alumnus{}
	for _, a := range m.items {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Alumnus, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockRepository) Create(ctx context.Context, a *Alumnus) error {
	m.items[a.ID] = a
	return nil
}

func (m *mockRepository) Update(ctx context.Context, a *Alumnus) error {
	if _, ok := m.items[a.ID]; !ok {
		return httpx.ErrNotFound
	}
	m.items[a.ID] = a
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepository) PhotoKeys(ctx context.Context) ([]string, error) {
	keys := []string{}
	for _, a := range m.items {
		if a.PhotoKey != "" {
			keys = append(keys, a.PhotoKey)
		}
	}
	return keys, nil
}

func newTestService(t *testing.T) (*Service, *mockRepository, blob.Store) {
	t.Helper()
	repo := newMockRepository()
	store, err := blob.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, store, nil, logger), repo, store
}

func photo(content string) Photo {
	return Photo{Reader: strings.NewReader(content), Size: int64(len(content)), ContentType: "image/jpeg"}
}

func validInput() AlumnusInput {
	return AlumnusInput{Name: "Neha Sharma", CompanyName: "Acme Corp", PlacementDate: "2026-05-20", Package: "12 LPA"}
}

var admin = &shared.Principal{ID: "admin_1", Name: "Admin One", Role: shared.RoleAdmin}
var otherAdmin = &shared.Principal{ID: "admin_2", Name: "Admin Two", Role: shared.RoleAdmin}

func TestCreateAlumnusStoresPhoto(t *testing.T) {
	svc, repo, store := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, admin, validInput(), photo("jpegdata"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.ID, "alum_"))
	assert.True(t, strings.HasPrefix(a.PhotoKey, "img_"))
	assert.Equal(t, "/uploads/"+a.PhotoKey, a.PhotoURL)
	assert.Contains(t, repo.items, a.ID)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.PhotoKey}, keys)
}

func TestListResolvesPhotoURLs(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, validInput(), photo("jpegdata"))
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/uploads/"+created.PhotoKey, list[0].PhotoURL)
}

func TestUpdateAlumnusReplacesPhoto(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, validInput(), photo("old"))
	require.NoError(t, err)
	oldKey := created.PhotoKey

	newPhoto := photo("new")
	updated, err := svc.Update(ctx, admin, created.ID, validInput(), &newPhoto)
	require.NoError(t, err)
	assert.NotEqual(t, oldKey, updated.PhotoKey)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{updated.PhotoKey}, keys)
}

func TestUpdateAlumnusWithoutPhotoKeepsKey(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, validInput(), photo("jpegdata"))
	require.NoError(t, err)

	input := validInput()
	input.CompanyName = "Globex"
	updated, err := svc.Update(ctx, admin, created.ID, input, nil)
	require.NoError(t, err)
	assert.Equal(t, created.PhotoKey, updated.PhotoKey)
	assert.Equal(t, "Globex", updated.CompanyName)
}

func TestUpdateAlumnusOwnership(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, validInput(), photo("jpegdata"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, otherAdmin, created.ID, validInput(), nil)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestDeleteAlumnusRemovesPhoto(t *testing.T) {
	svc, repo, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, validInput(), photo("jpegdata"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, created.ID))
	assert.NotContains(t, repo.items, created.ID)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
