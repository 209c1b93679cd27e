package service

import (
	"context"

	"bizdesk-backend/internal/domain"
)

// TenantLifecycleService is the state machine governing a tenant's standing.
// Every successful call commits the status change atomically with one audit
// entry and enqueues one notification event, fire-and-forget.
type TenantLifecycleService interface {
	Approve(ctx context.Context, actor domain.Actor, tenantID, note string) (*domain.Tenant, error)
	Reject(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error)
	Block(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error)
	// Suspend sets SuspensionExpiresAt when durationDays > 0.
	Suspend(ctx context.Context, actor domain.Actor, tenantID, reason string, durationDays int) (*domain.Tenant, error)
	Ban(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error)
	// Reactivate lifts blocked, suspended, banned or inactive tenants back to
	// active. Reversing a ban requires overrideBan; the audit entry is then
	// annotated as a ban reversal.
	Reactivate(ctx context.Context, actor domain.Actor, tenantID, note string, overrideBan bool) (*domain.Tenant, error)
	Deactivate(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error)
}

// TenantService covers the non-lifecycle tenant operations.
type TenantService interface {
	Register(ctx context.Context, t *domain.Tenant) error
	Get(ctx context.Context, id string) (*domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, t *domain.Tenant) error
}

// AuditService fronts the append-only administrative ledger. There is no
// update or delete operation by design.
type AuditService interface {
	Record(ctx context.Context, entry *domain.AuditLogEntry) (int64, error)
	Query(ctx context.Context, f domain.AuditLogFilter) ([]domain.AuditLogEntry, error)
}

// EditHistoryService computes field-level diffs and appends them per
// document, serialized per document id.
type EditHistoryService interface {
	Diff(oldDoc, newDoc any) ([]domain.FieldChange, error)
	Append(ctx context.Context, documentID string, actor domain.Actor, changes []domain.FieldChange) (*domain.EditHistoryEntry, error)
	History(ctx context.Context, documentID string) ([]domain.EditHistoryEntry, error)
}

// CascadeDeletionService performs guarded permanent deletions. Both methods
// require the literal confirmation token and either fully succeed (with one
// audit entry) or leave everything untouched.
type CascadeDeletionService interface {
	DeleteTenant(ctx context.Context, actor domain.Actor, tenantID, confirmation, reason string) (*domain.CascadeSummary, error)
	DeleteUser(ctx context.Context, actor domain.Actor, userID, confirmation, reason string) error
}

type UserService interface {
	CreateUser(ctx context.Context, actor domain.Actor, u *domain.User, password string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error)
}

type SalesOrderService interface {
	Create(ctx context.Context, actor domain.Actor, o *domain.SalesOrder) error
	Get(ctx context.Context, id string) (*domain.SalesOrder, error)
	// Update persists the new revision and appends one edit-history entry
	// carrying the field diff, serialized per document.
	Update(ctx context.Context, actor domain.Actor, o *domain.SalesOrder) (*domain.SalesOrder, []domain.FieldChange, error)
}
