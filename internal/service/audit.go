package service

import (
	"context"
	"errors"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/metrics"
	"bizdesk-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditLogRepository
	now       func() time.Time
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo, now: time.Now}
}

func (s *auditService) Record(ctx context.Context, entry *domain.AuditLogEntry) (int64, error) {
	if entry.Action == "" {
		return 0, errors.New("audit entry requires an action")
	}
	if entry.ActorID == "" {
		return 0, errors.New("audit entry requires an actor")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	id, err := s.auditRepo.Insert(ctx, entry)
	if err != nil {
		return 0, err
	}
	metrics.AuditEntriesTotal.Inc()
	return id, nil
}

// Query returns matching entries newest first. No filters means the whole
// ledger; no matches means an empty slice, never an error.
func (s *auditService) Query(ctx context.Context, f domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	entries, err := s.auditRepo.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.AuditLogEntry{}
	}
	return entries, nil
}
