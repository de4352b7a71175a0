package alumni

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/campusdrive/campusdrive/internal/platform/blob"
	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// AuditRecorder persists audit trail entries for admin mutations.
type AuditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service handles alumni business logic including photo storage.
type Service struct {
	repo   RepositoryPort
	store  blob.Store
	audit  AuditRecorder
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, store blob.Store, audit AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, store: store, audit: audit, logger: logger}
}

// AlumnusInput carries the client-supplied alumni fields.
type AlumnusInput struct {
	Name          string `validate:"required"`
	CompanyName   string `validate:"required"`
	PlacementDate string `validate:"required,datetime=2006-01-02"`
	Package       string `validate:"required"`
}

// Photo is an uploaded image ready to be stored.
type Photo struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// List returns alumni newest first with photo URLs resolved.
func (s *Service) List(ctx context.Context) ([]Alumnus, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		s.resolvePhoto(&list[i])
	}
	return list, nil
}

// Create stores the photo then inserts the alumni record. The blob is
// cleaned up if the insert fails.
func (s *Service) Create(ctx context.Context, actor *shared.Principal, input AlumnusInput, photo Photo) (*Alumnus, error) {
	key := shared.NewID(shared.PrefixPhoto)
	if err := s.store.Put(ctx, key, photo.Reader, photo.Size, photo.ContentType); err != nil {
		return nil, err
	}

	a := &Alumnus{
		ID:            shared.NewID(shared.PrefixAlum),
		Name:          input.Name,
		CompanyName:   input.CompanyName,
		PlacementDate: input.PlacementDate,
		Package:       input.Package,
		PhotoKey:      key,
		PostedBy:      actor.Name,
		PostedByID:    actor.ID,
		PostedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if rmErr := s.store.Remove(ctx, key); rmErr != nil && s.logger != nil {
			s.logger.Warn("orphaned photo cleanup", slog.Any("error", rmErr), slog.String("key", key))
		}
		return nil, err
	}
	s.resolvePhoto(a)
	s.recordAudit(ctx, actor, "alumnus.create", a.ID)
	return a, nil
}

// Update overwrites an alumni record, replacing the stored photo when a
// new one is supplied. Only the original poster or a SUPER_ADMIN may
// mutate it.
func (s *Service) Update(ctx context.Context, actor *shared.Principal, id string, input AlumnusInput, photo *Photo) (*Alumnus, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(existing.PostedByID) {
		return nil, httpx.ErrForbidden
	}

	oldKey := ""
	if photo != nil {
		key := shared.NewID(shared.PrefixPhoto)
		if err := s.store.Put(ctx, key, photo.Reader, photo.Size, photo.ContentType); err != nil {
			return nil, err
		}
		oldKey = existing.PhotoKey
		existing.PhotoKey = key
	}

	existing.Name = input.Name
	existing.CompanyName = input.CompanyName
	existing.PlacementDate = input.PlacementDate
	existing.Package = input.Package

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	if oldKey != "" {
		if err := s.store.Remove(ctx, oldKey); err != nil && s.logger != nil {
			s.logger.Warn("stale photo cleanup", slog.Any("error", err), slog.String("key", oldKey))
		}
	}
	s.resolvePhoto(existing)
	s.recordAudit(ctx, actor, "alumnus.update", id)
	return existing, nil
}

// Delete removes an alumni record and its photo under the same ownership
// rule as Update.
func (s *Service) Delete(ctx context.Context, actor *shared.Principal, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanMutate(existing.PostedByID) {
		return httpx.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.PhotoKey != "" {
		if err := s.store.Remove(ctx, existing.PhotoKey); err != nil && s.logger != nil {
			s.logger.Warn("photo cleanup", slog.Any("error", err), slog.String("key", existing.PhotoKey))
		}
	}
	s.recordAudit(ctx, actor, "alumnus.delete", id)
	return nil
}

func (s *Service) resolvePhoto(a *Alumnus) {
	if a.PhotoKey != "" {
		a.PhotoURL = s.store.URL(a.PhotoKey)
	}
}

func (s *Service) recordAudit(ctx context.Context, actor *shared.Principal, action, entityID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actor.ID, Action: action, Entity: "alumnus", EntityID: entityID}); err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.Any("error", err))
	}
}
