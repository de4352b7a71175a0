package users

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
	_ "github.com/campusdrive/campusdrive/testing"
)

type mockRepository struct {
	users      map[string]*User
	byUsername map[string]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User), byUsername: make(map[string]*User)}
}

func (m *mockRepository) List(ctx context.Context) ([]User, error) {
	out := []User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	if _, ok := m.byUsername[u.Username]; ok {
		return ErrUsernameTaken
	}
	m.users[u.ID] = u
	m.byUsername[u.Username] = u
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return httpx.ErrNotFound
	}
	delete(m.byUsername, u.Username)
	delete(m.users, id)
	return nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, nil, logger), repo
}

var admin = &shared.Principal{ID: "admin_1", Role: shared.RoleAdmin}
var superAdmin = &shared.Principal{ID: "admin_root", Role: shared.RoleSuperAdmin}

func TestCreateStudentDefaults(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.CreateStudent(context.Background(), admin, "neha", "", "secret123", "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(u.ID, "user_"))
	assert.Equal(t, shared.RoleStudent, u.Role)
	assert.Equal(t, shared.TierFree, u.Tier)
	// Username doubles as display name when none is given.
	assert.Equal(t, "neha", u.Name)
	assert.Contains(t, repo.users, u.ID)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
}

func TestCreateStudentWithPremiumTier(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.CreateStudent(context.Background(), admin, "rahul", "Rahul S", "secret123", shared.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, shared.TierPremium, u.Tier)
	assert.Equal(t, "Rahul S", u.Name)
}

func TestCreateAdmin(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.CreateAdmin(context.Background(), superAdmin, "placement", "Placement Cell", "secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.ID, "admin_"))
	assert.Equal(t, shared.RoleAdmin, u.Role)
	assert.Equal(t, shared.TierPremium, u.Tier)
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateStudent(context.Background(), admin, "neha", "", "secret123", "")
	require.NoError(t, err)
	_, err = svc.CreateStudent(context.Background(), admin, "neha", "", "othersecret", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestDeleteUser(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.CreateStudent(context.Background(), admin, "neha", "", "secret123", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), admin, u.ID))
	assert.NotContains(t, repo.users, u.ID)
}

func TestDeleteSuperAdminRefused(t *testing.T) {
	svc, repo := newTestService()

	root := &User{ID: "admin_root", Username: "root", Role: shared.RoleSuperAdmin, Tier: shared.TierPremium}
	repo.users[root.ID] = root
	repo.byUsername[root.Username] = root

	err := svc.Delete(context.Background(), superAdmin, root.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
	assert.Contains(t, repo.users, root.ID)
}

func TestDeleteMissingUser(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), admin, "user_missing")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
