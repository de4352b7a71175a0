package drives

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
	_ "github.com/campusdrive/campusdrive/testing"
)

type mockRepository struct {
	drives  map[string]*Drive
	listErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{drives: make(map[string]*Drive)}
}

func (m *mockRepository) List(ctx context.Context, freeOnly bool) ([]Drive, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []Drive{}
	for _, d := range m.drives {
		if freeOnly && !d.IsFree {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Drive, error) {
	d, ok := m.drives[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *mockRepository) Create(ctx context.Context, d *Drive) error {
	m.drives[d.ID] = d
	return nil
}

func (m *mockRepository) Update(ctx context.Context, d *Drive) error {
	if _, ok := m.drives[d.ID]; !ok {
		return httpx.ErrNotFound
	}
	m.drives[d.ID] = d
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.drives[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.drives, id)
	return nil
}

type mockAudit struct {
	entries []shared.AuditLog
}

func (m *mockAudit) Record(ctx context.Context, log shared.AuditLog) error {
	m.entries = append(m.entries, log)
	return nil
}

func newTestService() (*Service, *mockRepository, *mockAudit) {
	repo := newMockRepository()
	audit := &mockAudit{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, audit, logger), repo, audit
}

func validInput() DriveInput {
	return DriveInput{
		CompanyName:   "Acme Corp",
		Role:          "Backend Engineer",
		Description:   "Build services",
		Eligibility:   []string{"CSE", "IT"},
		Location:      "Bengaluru",
		ApplyDeadline: "2026-10-01",
		PackageLevel:  PackageMid,
		IsFree:        true,
	}
}

var admin = &shared.Principal{ID: "admin_1", Name: "Admin One", Role: shared.RoleAdmin}
var otherAdmin = &shared.Principal{ID: "admin_2", Name: "Admin Two", Role: shared.RoleAdmin}
var superAdmin = &shared.Principal{ID: "admin_root", Name: "Root", Role: shared.RoleSuperAdmin}

func TestCreateDriveSetsPosterIdentity(t *testing.T) {
	svc, repo, audit := newTestService()

	drive, err := svc.Create(context.Background(), admin, validInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(drive.ID, "drive_"))
	assert.Equal(t, "Admin One", drive.PostedBy)
	assert.Equal(t, "admin_1", drive.PostedByID)
	assert.False(t, drive.PostedAt.IsZero())
	assert.Contains(t, repo.drives, drive.ID)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "drive.create", audit.entries[0].Action)
	assert.Equal(t, drive.ID, audit.entries[0].EntityID)
}

func TestCreateDriveNormalisesNilEligibility(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.Eligibility = nil
	drive, err := svc.Create(context.Background(), admin, input)
	require.NoError(t, err)
	assert.NotNil(t, drive.Eligibility)
	assert.Empty(t, drive.Eligibility)
}

func TestUpdateDriveByNonOwnerForbidden(t *testing.T) {
	svc, _, _ := newTestService()

	drive, err := svc.Create(context.Background(), admin, validInput())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), otherAdmin, drive.ID, validInput())
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestUpdateDriveBySuperAdminAllowed(t *testing.T) {
	svc, _, _ := newTestService()

	drive, err := svc.Create(context.Background(), admin, validInput())
	require.NoError(t, err)

	input := validInput()
	input.CompanyName = "Globex"
	updated, err := svc.Update(context.Background(), superAdmin, drive.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.CompanyName)
	// Poster identity is immutable across updates.
	assert.Equal(t, "admin_1", updated.PostedByID)
}

func TestUpdateMissingDriveNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), admin, "drive_missing", validInput())
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteDriveOwnership(t *testing.T) {
	svc, repo, audit := newTestService()

	drive, err := svc.Create(context.Background(), admin, validInput())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), otherAdmin, drive.ID)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
	assert.Contains(t, repo.drives, drive.ID)

	require.NoError(t, svc.Delete(context.Background(), admin, drive.ID))
	assert.NotContains(t, repo.drives, drive.ID)
	assert.Equal(t, "drive.delete", audit.entries[len(audit.entries)-1].Action)
}

func TestListFreeVisibility(t *testing.T) {
	svc, _, _ := newTestService()

	free := validInput()
	free.IsFree = true
	premium := validInput()
	premium.CompanyName = "Premium Inc"
	premium.IsFree = false

	_, err := svc.Create(context.Background(), admin, free)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), admin, premium)
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	freeOnly, err := svc.List(context.Background(), "free")
	require.NoError(t, err)
	require.Len(t, freeOnly, 1)
	assert.Equal(t, "Acme Corp", freeOnly[0].CompanyName)
}
