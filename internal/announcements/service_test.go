package announcements

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
	_ "github.com/campusdrive/campusdrive/testing"
)

type mockRepository struct {
	items         map[string]*Announcement
	lastFilter    Visibility
	filterApplied bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[string]*Announcement)}
}

func (m *mockRepository) List(ctx context.Context, visibility Visibility) ([]Announcement, error) {
	m.lastFilter = visibility
	m.filterApplied = true
	out := []Announcement{}
	for _, a := range m.items {
		switch visibility {
		case VisibilityPublic:
			if !a.IsPublic {
				continue
			}
		case VisibilityStudent:
			if a.IsPublic {
				continue
			}
		}
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Announcement, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockRepository) Create(ctx context.Context, a *Announcement) error {
	m.items[a.ID] = a
	return nil
}

func (m *mockRepository) Update(ctx context.Context, a *Announcement) error {
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

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, nil, logger), repo
}

var admin = &shared.Principal{ID: "admin_1", Name: "Admin One", Role: shared.RoleAdmin}
var otherAdmin = &shared.Principal{ID: "admin_2", Name: "Admin Two", Role: shared.RoleAdmin}
var superAdmin = &shared.Principal{ID: "admin_root", Name: "Root", Role: shared.RoleSuperAdmin}

func TestListAnonymousForcedPublic(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.List(context.Background(), nil, VisibilityStudent)
	require.NoError(t, err)
	assert.Equal(t, VisibilityPublic, repo.lastFilter)

	_, err = svc.List(context.Background(), nil, VisibilityAll)
	require.NoError(t, err)
	assert.Equal(t, VisibilityPublic, repo.lastFilter)
}

func TestListAuthenticatedKeepsFilter(t *testing.T) {
	svc, repo := newTestService()
	student := &shared.Principal{ID: "user_1", Role: shared.RoleStudent}

	_, err := svc.List(context.Background(), student, VisibilityStudent)
	require.NoError(t, err)
	assert.Equal(t, VisibilityStudent, repo.lastFilter)

	_, err = svc.List(context.Background(), student, VisibilityAll)
	require.NoError(t, err)
	assert.Equal(t, VisibilityAll, repo.lastFilter)
}

func TestCreateAnnouncementSetsPoster(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.Create(context.Background(), admin, AnnouncementInput{Title: "Results", Content: "Out now", IsPublic: true})
	require.NoError(t, err)
	assert.Contains(t, a.ID, "anno_")
	assert.Equal(t, "admin_1", a.PostedByID)
	assert.Contains(t, repo.items, a.ID)
}

func TestUpdateAnnouncementOwnership(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Create(context.Background(), admin, AnnouncementInput{Title: "Results", Content: "Out now"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), otherAdmin, a.ID, AnnouncementInput{Title: "Edited", Content: "x"})
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	updated, err := svc.Update(context.Background(), superAdmin, a.ID, AnnouncementInput{Title: "Edited", Content: "x", IsPublic: true})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.True(t, updated.IsPublic)
}

func TestDeleteAnnouncementOwnership(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.Create(context.Background(), admin, AnnouncementInput{Title: "Results", Content: "Out now"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), otherAdmin, a.ID), httpx.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), admin, a.ID))
	assert.NotContains(t, repo.items, a.ID)
}
