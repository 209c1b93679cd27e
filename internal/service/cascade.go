package service

import (
	"context"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/logger"
	"bizdesk-backend/internal/repository"
)

type cascadeService struct {
	cascadeRepo repository.CascadeRepository
	tenantRepo  repository.TenantRepository
	userRepo    repository.UserRepository
	guard       ConfirmationGuard
	timeout     time.Duration
	now         func() time.Time
}

func NewCascadeDeletionService(
	cascadeRepo repository.CascadeRepository,
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	guard ConfirmationGuard,
	timeout time.Duration,
) CascadeDeletionService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &cascadeService{
		cascadeRepo: cascadeRepo,
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		guard:       guard,
		timeout:     timeout,
		now:         time.Now,
	}
}

func (s *cascadeService) DeleteTenant(ctx context.Context, actor domain.Actor, tenantID, confirmation, reason string) (*domain.CascadeSummary, error) {
	if err := s.guard.Authorize(domain.ConfirmationToken, confirmation); err != nil {
		return nil, err
	}

	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	entry := &domain.AuditLogEntry{
		Action:     domain.AuditActionDeleteTenant,
		TargetID:   t.ID,
		TargetName: t.Name,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Details:    reason,
		IPAddress:  actor.IPAddress,
		CreatedAt:  s.now().UTC(),
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	summary, err := s.cascadeRepo.DeleteTenantCascade(cctx, t.ID, entry)
	if err != nil {
		return nil, err
	}
	logger.Info("tenant permanently deleted",
		"tenant_id", summary.TenantID,
		"users_removed", summary.UsersRemoved,
		"sales_orders_removed", summary.SalesOrdersRemoved,
		"actor_id", actor.ID)
	return summary, nil
}

func (s *cascadeService) DeleteUser(ctx context.Context, actor domain.Actor, userID, confirmation, reason string) error {
	if err := s.guard.Authorize(domain.ConfirmationToken, confirmation); err != nil {
		return err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	entry := &domain.AuditLogEntry{
		Action:     domain.AuditActionDeleteUser,
		TargetID:   u.ID,
		TargetName: u.Name,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Details:    reason,
		IPAddress:  actor.IPAddress,
		CreatedAt:  s.now().UTC(),
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.cascadeRepo.DeleteUserCascade(cctx, u.ID, entry); err != nil {
		return err
	}
	logger.Info("user permanently deleted", "user_id", u.ID, "tenant_id", u.TenantID, "actor_id", actor.ID)
	return nil
}
