package drives

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

// Service handles drive business logic.
type Service struct {
	repo   RepositoryPort
	audit  AuditRecorder
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// DriveInput carries the client-supplied drive fields.
type DriveInput struct {
	CompanyName   string       `json:"companyName" validate:"required"`
	Role          string       `json:"role" validate:"required"`
	Description   string       `json:"description" validate:"required"`
	Eligibility   []string     `json:"eligibility"`
	Location      string       `json:"location" validate:"required"`
	Salary        *string      `json:"salary"`
	ApplyDeadline string       `json:"applyDeadline" validate:"required,datetime=2006-01-02"`
	ApplyLink     *string      `json:"applyLink"`
	PackageLevel  PackageLevel `json:"packageLevel" validate:"required,oneof=LOW MID HIGH"`
	IsFree        bool         `json:"isFree"`
}

// List returns drives newest first. visibility "free" hides premium drives.
func (s *Service) List(ctx context.Context, visibility string) ([]Drive, error) {
	return s.repo.List(ctx, visibility == "free")
}

// Create inserts a new drive posted by the acting principal.
func (s *Service) Create(ctx context.Context, actor *shared.Principal, input DriveInput) (*Drive, error) {
	drive := &Drive{
		ID:            shared.NewID(shared.PrefixDrive),
		CompanyName:   input.CompanyName,
		Role:          input.Role,
		Description:   input.Description,
		Eligibility:   input.Eligibility,
		Location:      input.Location,
		Salary:        input.Salary,
		ApplyDeadline: input.ApplyDeadline,
		ApplyLink:     input.ApplyLink,
		PackageLevel:  input.PackageLevel,
		IsFree:        input.IsFree,
		PostedBy:      actor.Name,
		PostedByID:    actor.ID,
		PostedAt:      time.Now().UTC(),
	}
	if drive.Eligibility == nil {
		drive.Eligibility = []string{}
	}
	if err := s.repo.Create(ctx, drive); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor, "drive.create", drive.ID)
	return drive, nil
}

// Update overwrites a drive. Only the original poster or a SUPER_ADMIN may
// mutate it.
func (s *Service) Update(ctx context.Context, actor *shared.Principal, id string, input DriveInput) (*Drive, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(existing.PostedByID) {
		return nil, httpx.ErrForbidden
	}

	existing.CompanyName = input.CompanyName
	existing.Role = input.Role
	existing.Description = input.Description
	existing.Eligibility = input.Eligibility
	existing.Location = input.Location
	existing.Salary = input.Salary
	existing.ApplyDeadline = input.ApplyDeadline
	existing.ApplyLink = input.ApplyLink
	existing.PackageLevel = input.PackageLevel
	existing.IsFree = input.IsFree
	if existing.Eligibility == nil {
		existing.Eligibility = []string{}
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor, "drive.update", id)
	return existing, nil
}

// Delete removes a drive under the same ownership rule as Update.
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
	s.recordAudit(ctx, actor, "drive.delete", id)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actor *shared.Principal, action, entityID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actor.ID, Action: action, Entity: "drive", EntityID: entityID}); err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.Any("error", err))
	}
}
