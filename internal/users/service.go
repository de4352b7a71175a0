package users

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
	"github.com/campusdrive/campusdrive/internal/shared"
)

// AuditRecorder persists audit trail entries for account mutations.
type AuditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service handles account administration.
type Service struct {
	repo   RepositoryPort
	audit  AuditRecorder
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// CreateStudent provisions a student account with the chosen tier.
func (s *Service) CreateStudent(ctx context.Context, actor *shared.Principal, username, name, password string, tier shared.Tier) (*User, error) {
	if tier == "" {
		tier = shared.TierFree
	}
	u, err := s.create(ctx, shared.PrefixUser, username, name, password, shared.RoleStudent, tier)
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor, "user.create", u.ID)
	return u, nil
}

// CreateAdmin provisions an admin account. Admins always carry the
// premium tier.
func (s *Service) CreateAdmin(ctx context.Context, actor *shared.Principal, username, name, password string) (*User, error) {
	u, err := s.create(ctx, shared.PrefixAdmin, username, name, password, shared.RoleAdmin, shared.TierPremium)
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor, "admin.create", u.ID)
	return u, nil
}

func (s *Service) create(ctx context.Context, prefix, username, name, password string, role shared.Role, tier shared.Tier) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = username
	}
	u := &User{
		ID:           shared.NewID(prefix),
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Tier:         tier,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an account. SUPER_ADMIN accounts cannot be deleted
// through the API.
func (s *Service) Delete(ctx context.Context, actor *shared.Principal, id string) error {
	target, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == shared.RoleSuperAdmin {
		return httpx.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, actor, "user.delete", id)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actor *shared.Principal, action, entityID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actor.ID, Action: action, Entity: "user", EntityID: entityID}); err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.Any("error", err))
	}
}
