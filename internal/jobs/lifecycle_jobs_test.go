package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bizdesk-backend/internal/config"
	"bizdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTenantRepo struct {
	expired []domain.Tenant
	err     error
}

func (f *fakeTenantRepo) Create(ctx context.Context, t *domain.Tenant) error { return nil }
func (f *fakeTenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeTenantRepo) List(ctx context.Context) ([]domain.Tenant, error) { return nil, nil }
func (f *fakeTenantRepo) ListSuspensionExpired(ctx context.Context, asOf time.Time) ([]domain.Tenant, error) {
	return f.expired, f.err
}
func (f *fakeTenantRepo) UpdateProfile(ctx context.Context, t *domain.Tenant, entry *domain.AuditLogEntry) error {
	return nil
}
func (f *fakeTenantRepo) ApplyStatusChange(ctx context.Context, t *domain.Tenant, expectedVersion int64, entry *domain.AuditLogEntry) (int64, error) {
	return 0, nil
}

type reactivateCall struct {
	actor       domain.Actor
	tenantID    string
	note        string
	overrideBan bool
}

type fakeLifecycle struct {
	mu      sync.Mutex
	calls   []reactivateCall
	failFor map[string]error
}

func (f *fakeLifecycle) Approve(ctx context.Context, actor domain.Actor, tenantID, note string) (*domain.Tenant, error) {
	panic("unexpected Approve")
}
func (f *fakeLifecycle) Reject(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error) {
	panic("unexpected Reject")
}
func (f *fakeLifecycle) Block(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error) {
	panic("unexpected Block")
}
func (f *fakeLifecycle) Suspend(ctx context.Context, actor domain.Actor, tenantID, reason string, durationDays int) (*domain.Tenant, error) {
	panic("unexpected Suspend")
}
func (f *fakeLifecycle) Ban(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error) {
	panic("unexpected Ban")
}
func (f *fakeLifecycle) Reactivate(ctx context.Context, actor domain.Actor, tenantID, note string, overrideBan bool) (*domain.Tenant, error) {
	f.mu.Lock()
	f.calls = append(f.calls, reactivateCall{actor, tenantID, note, overrideBan})
	f.mu.Unlock()
	if err, ok := f.failFor[tenantID]; ok {
		return nil, err
	}
	return &domain.Tenant{ID: tenantID, Status: domain.TenantStatusActive}, nil
}
func (f *fakeLifecycle) Deactivate(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error) {
	panic("unexpected Deactivate")
}

func suspendedTenant(id string) domain.Tenant {
	expires := time.Now().UTC().Add(-time.Hour)
	return domain.Tenant{
		ID:                  id,
		Status:              domain.TenantStatusSuspended,
		SuspensionExpiresAt: &expires,
	}
}

func TestReactivateExpiredSuspensions(t *testing.T) {
	repo := &fakeTenantRepo{expired: []domain.Tenant{suspendedTenant("t-1"), suspendedTenant("t-2")}}
	lifecycle := &fakeLifecycle{}
	runner := NewJobRunner(&config.Config{}, repo, lifecycle)

	runner.ReactivateExpiredSuspensions()

	require.Len(t, lifecycle.calls, 2)
	for _, call := range lifecycle.calls {
		assert.Equal(t, "system", call.actor.ID)
		assert.Equal(t, "suspension period expired", call.note)
		assert.False(t, call.overrideBan, "scheduled lifts must never reverse bans")
	}
}

func TestReactivateExpiredSuspensionsSkipsConcurrentChanges(t *testing.T) {
	repo := &fakeTenantRepo{expired: []domain.Tenant{suspendedTenant("t-1"), suspendedTenant("t-2")}}
	lifecycle := &fakeLifecycle{failFor: map[string]error{"t-1": domain.ErrStaleState}}
	runner := NewJobRunner(&config.Config{}, repo, lifecycle)

	// The stale tenant is skipped; the rest still get processed.
	runner.ReactivateExpiredSuspensions()
	assert.Len(t, lifecycle.calls, 2)
}

func TestReactivateExpiredSuspensionsListFailure(t *testing.T) {
	repo := &fakeTenantRepo{err: errors.New("db down")}
	lifecycle := &fakeLifecycle{}
	runner := NewJobRunner(&config.Config{}, repo, lifecycle)

	runner.ReactivateExpiredSuspensions()
	assert.Empty(t, lifecycle.calls)
}
