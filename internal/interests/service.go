package interests

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// Service handles hall pass issuance and lookups.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Register issues a hall pass for the drive, or returns the one the
// student already holds. Issuance is idempotent per (user, drive).
func (s *Service) Register(ctx context.Context, actor *shared.Principal, driveID, studentID string) (*Interest, bool, error) {
	existing, err := s.repo.FindByUserAndDrive(ctx, actor.ID, driveID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	in := &Interest{
		PassID:    shared.NewID(shared.PrefixPass),
		UserID:    actor.ID,
		DriveID:   driveID,
		UserName:  actor.Name,
		StudentID: studentID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, in); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				// Concurrent registration won the race; hand back its pass.
				existing, ferr := s.repo.FindByUserAndDrive(ctx, actor.ID, driveID)
				if ferr != nil {
					return nil, false, ferr
				}
				return existing, false, nil
			case "23503":
				return nil, false, httpx.ErrNotFound
			}
		}
		return nil, false, err
	}
	return in, true, nil
}

// ListForUser returns the passes the acting student holds.
func (s *Service) ListForUser(ctx context.Context, actor *shared.Principal) ([]Interest, error) {
	return s.repo.ListByUser(ctx, actor.ID)
}

// ListForDrive returns every pass issued for one drive.
func (s *Service) ListForDrive(ctx context.Context, driveID string) ([]Interest, error) {
	return s.repo.ListByDrive(ctx, driveID)
}

// Counts returns the pass tally per drive id.
func (s *Service) Counts(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByDrive(ctx)
}
