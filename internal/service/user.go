package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	auditSvc   AuditService
	now        func() time.Time
}

func NewUserService(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, auditSvc AuditService) UserService {
	return &userService{userRepo: userRepo, tenantRepo: tenantRepo, auditSvc: auditSvc, now: time.Now}
}

func (s *userService) CreateUser(ctx context.Context, actor domain.Actor, u *domain.User, password string) (*domain.User, error) {
	if strings.TrimSpace(u.Email) == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if u.Role != domain.UserRoleAdmin && u.Role != domain.UserRoleMember {
		return nil, fmt.Errorf("unknown user role %q", u.Role)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if _, err := s.tenantRepo.GetByID(ctx, u.TenantID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	_, err = s.auditSvc.Record(ctx, &domain.AuditLogEntry{
		Action:     domain.AuditActionCreateUser,
		TargetID:   u.ID,
		TargetName: u.Name,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Details:    fmt.Sprintf("created %s user for tenant %s", u.Role, u.TenantID),
		IPAddress:  actor.IPAddress,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error) {
	return s.userRepo.ListByTenant(ctx, tenantID)
}
