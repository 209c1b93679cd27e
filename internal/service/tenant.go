package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/metrics"
	"bizdesk-backend/internal/repository"
)

type tenantService struct {
	tenantRepo repository.TenantRepository
	now        func() time.Time
}

func NewTenantService(tenantRepo repository.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo, now: time.Now}
}

// Register creates a tenant in pending_approval. Registration precedes any
// administrative decision, so it carries no audit entry; the first audited
// event is the approve or reject that follows.
func (s *tenantService) Register(ctx context.Context, t *domain.Tenant) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tenant name is required")
	}
	if strings.TrimSpace(t.ContactEmail) == "" {
		return fmt.Errorf("tenant contact email is required")
	}
	return s.tenantRepo.Create(ctx, t)
}

func (s *tenantService) Get(ctx context.Context, id string) (*domain.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

func (s *tenantService) List(ctx context.Context) ([]domain.Tenant, error) {
	return s.tenantRepo.List(ctx)
}

// UpdateProfile writes the mutable profile fields and their update_tenant
// audit entry in one transaction. Status fields never change here.
func (s *tenantService) UpdateProfile(ctx context.Context, actor domain.Actor, t *domain.Tenant) error {
	existing, err := s.tenantRepo.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	entry := &domain.AuditLogEntry{
		Action:     domain.AuditActionUpdateTenant,
		TargetID:   existing.ID,
		TargetName: existing.Name,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Details:    fmt.Sprintf("profile updated (name %q -> %q)", existing.Name, t.Name),
		IPAddress:  actor.IPAddress,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.tenantRepo.UpdateProfile(ctx, t, entry); err != nil {
		return err
	}
	metrics.AuditEntriesTotal.Inc()
	return nil
}
