package interests

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdrive/campusdrive/internal/shared"
	_ "github.com/campusdrive/campusdrive/testing"
)

type mockRepository struct {
	passes []Interest
}

func (m *mockRepository) Create(ctx context.Context, in *Interest) error {
	m.passes = append(m.passes, *in)
	return nil
}

func (m *mockRepository) FindByUserAndDrive(ctx context.Context, userID, driveID string) (*Interest, error) {
	for i := range m.passes {
		if m.passes[i].UserID == userID && m.passes[i].DriveID == driveID {
			copied := m.passes[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) ListByUser(ctx context.Context, userID string) ([]Interest, error) {
	out := []Interest{}
	for _, p := range m.passes {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) ListByDrive(ctx context.Context, driveID string) ([]Interest, error) {
	out := []Interest{}
	for _, p := range m.passes {
		if p.DriveID == driveID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) CountByDrive(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, p := range m.passes {
		counts[p.DriveID]++
	}
	return counts, nil
}

func newTestService() (*Service, *mockRepository) {
	repo := &mockRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

var student = &shared.Principal{ID: "user_1", Name: "Neha", Role: shared.RoleStudent}

func TestRegisterIssuesPass(t *testing.T) {
	svc, repo := newTestService()

	pass, created, err := svc.Register(context.Background(), student, "drive_1", "CS2021001")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, strings.HasPrefix(pass.PassID, "pass_"))
	assert.Equal(t, "user_1", pass.UserID)
	assert.Equal(t, "Neha", pass.UserName)
	assert.Equal(t, "CS2021001", pass.StudentID)
	assert.Len(t, repo.passes, 1)
}

func TestRegisterIsIdempotent(t *testing.T) {
	svc, repo := newTestService()

	first, created, err := svc.Register(context.Background(), student, "drive_1", "CS2021001")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Register(context.Background(), student, "drive_1", "CS2021001")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.PassID, second.PassID)
	assert.Len(t, repo.passes, 1)
}

func TestRegisterDistinctDrivesGetDistinctPasses(t *testing.T) {
	svc, _ := newTestService()

	first, _, err := svc.Register(context.Background(), student, "drive_1", "CS2021001")
	require.NoError(t, err)
	second, _, err := svc.Register(context.Background(), student, "drive_2", "CS2021001")
	require.NoError(t, err)
	assert.NotEqual(t, first.PassID, second.PassID)

	mine, err := svc.ListForUser(context.Background(), student)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestCounts(t *testing.T) {
	svc, _ := newTestService()

	other := &shared.Principal{ID: "user_2", Name: "Rahul", Role: shared.RoleStudent}
	_, _, err := svc.Register(context.Background(), student, "drive_1", "CS2021001")
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), other, "drive_1", "CS2021002")
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), student, "drive_2", "CS2021001")
	require.NoError(t, err)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts["drive_1"])
	assert.Equal(t, 1, counts["drive_2"])

	details, err := svc.ListForDrive(context.Background(), "drive_1")
	require.NoError(t, err)
	assert.Len(t, details, 2)
}
