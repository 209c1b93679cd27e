package repository

import (
	"context"
	"time"

	"bizdesk-backend/internal/domain"
)

type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
	ListSuspensionExpired(ctx context.Context, asOf time.Time) ([]domain.Tenant, error)
	// UpdateProfile writes the mutable non-status fields and the audit entry
	// in one transaction. Status fields are off limits here; they change
	// through ApplyStatusChange.
	UpdateProfile(ctx context.Context, t *domain.Tenant, entry *domain.AuditLogEntry) error
	// ApplyStatusChange commits the new status fields of t and the audit
	// entry in a single transaction, guarded by a compare-and-swap on
	// expectedVersion. Returns the assigned audit entry id. A version
	// mismatch yields domain.ErrStaleState and leaves nothing written.
	ApplyStatusChange(ctx context.Context, t *domain.Tenant, expectedVersion int64, entry *domain.AuditLogEntry) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error)
	CountAdmins(ctx context.Context, tenantID string) (int64, error)
}

// AuditLogRepository is append-only by construction: there is no update or
// delete method, and none may be added.
type AuditLogRepository interface {
	Insert(ctx context.Context, e *domain.AuditLogEntry) (int64, error)
	Query(ctx context.Context, f domain.AuditLogFilter) ([]domain.AuditLogEntry, error)
}

// EditHistoryRepository is append-only per document.
type EditHistoryRepository interface {
	Insert(ctx context.Context, e *domain.EditHistoryEntry) (int64, error)
	ListByDocument(ctx context.Context, documentID string) ([]domain.EditHistoryEntry, error)
}

type SalesOrderRepository interface {
	Create(ctx context.Context, o *domain.SalesOrder) error
	GetByID(ctx context.Context, id string) (*domain.SalesOrder, error)
	Update(ctx context.Context, o *domain.SalesOrder) error
	ListByTenant(ctx context.Context, tenantID string) ([]domain.SalesOrder, error)
}

// CascadeRepository runs destructive cascades. Each method deletes its
// target and dependents and writes exactly one audit entry, all in a single
// transaction: either everything commits or nothing does. Edit history is
// deliberately left in place.
type CascadeRepository interface {
	DeleteTenantCascade(ctx context.Context, tenantID string, entry *domain.AuditLogEntry) (*domain.CascadeSummary, error)
	// DeleteUserCascade refuses with domain.ErrLastAdminProtection when the
	// target is the sole admin of an active tenant.
	DeleteUserCascade(ctx context.Context, userID string, entry *domain.AuditLogEntry) (int64, error)
}
