package announcements

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// AuditRecorder persists audit trail entries for admin mutations.
type AuditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service handles announcement business logic.
type Service struct {
	repo   RepositoryPort
	audit  AuditRecorder
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// AnnouncementInput carries the client-supplied announcement fields.
type AnnouncementInput struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	IsPublic bool   `json:"isPublic"`
}

// List returns announcements visible to the given principal. Anonymous
// callers only ever see public ones regardless of the requested filter.
func (s *Service) List(ctx context.Context, actor *shared.Principal, visibility Visibility) ([]Announcement, error) {
	if actor == nil {
		visibility = VisibilityPublic
	}
	return s.repo.List(ctx, visibility)
}

// Create inserts a new announcement posted by the acting principal.
func (s *Service) Create(ctx context.Context, actor *shared.Principal, input AnnouncementInput) (*Announcement, error) {
	a := &Announcement{
		ID:         shared.NewID(shared.PrefixAnno),
		Title:      input.Title,
		Content:    input.Content,
		IsPublic:   input.IsPublic,
		PostedBy:   actor.Name,
		PostedByID: actor.ID,
		PostedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor, "announcement.create", a.ID)
	return a, nil
}

// Update overwrites an announcement. Only the original poster or a
// SUPER_ADMIN may mutate it.
func (s *Service) Update(ctx context.Context, actor *shared.Principal, id string, input AnnouncementInput) (*Announcement, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(existing.PostedByID) {
		return nil, httpx.ErrForbidden
	}

	existing.Title = input.Title
	existing.Content = input.Content
	existing.IsPublic = input.IsPublic

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor, "announcement.update", id)
	return existing, nil
}

// Delete removes an announcement under the same ownership rule as Update.
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
	s.recordAudit(ctx, actor, "announcement.delete", id)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actor *shared.Principal, action, entityID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actor.ID, Action: action, Entity: "announcement", EntityID: entityID}); err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.Any("error", err))
	}
}
