package service

import (
	"context"
	"sync"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/notify"

	"github.com/stretchr/testify/mock"
)

type MockTenantRepo struct {
	mock.Mock
}

func (m *MockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepo) List(ctx context.Context) ([]domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepo) ListSuspensionExpired(ctx context.Context, asOf time.Time) ([]domain.Tenant, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepo) UpdateProfile(ctx context.Context, t *domain.Tenant, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, t, entry)
	return args.Error(0)
}

func (m *MockTenantRepo) ApplyStatusChange(ctx context.Context, t *domain.Tenant, expectedVersion int64, entry *domain.AuditLogEntry) (int64, error) {
	args := m.Called(ctx, t, expectedVersion, entry)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) CountAdmins(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Insert(ctx context.Context, e *domain.AuditLogEntry) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditRepo) Query(ctx context.Context, f domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

type MockCascadeRepo struct {
	mock.Mock
}

func (m *MockCascadeRepo) DeleteTenantCascade(ctx context.Context, tenantID string, entry *domain.AuditLogEntry) (*domain.CascadeSummary, error) {
	args := m.Called(ctx, tenantID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CascadeSummary), args.Error(1)
}

func (m *MockCascadeRepo) DeleteUserCascade(ctx context.Context, userID string, entry *domain.AuditLogEntry) (int64, error) {
	args := m.Called(ctx, userID, entry)
	return args.Get(0).(int64), args.Error(1)
}

type MockSalesOrderRepo struct {
	mock.Mock
}

func (m *MockSalesOrderRepo) Create(ctx context.Context, o *domain.SalesOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSalesOrderRepo) GetByID(ctx context.Context, id string) (*domain.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepo) Update(ctx context.Context, o *domain.SalesOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSalesOrderRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.SalesOrder, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesOrder), args.Error(1)
}

// recordingDispatcher collects events for assertions; safe for concurrent use.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (d *recordingDispatcher) Dispatch(ev notify.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
}

func (d *recordingDispatcher) Close() {}

func (d *recordingDispatcher) Events() []notify.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]notify.Event, len(d.events))
	copy(out, d.events)
	return out
}

// recordingHistoryRepo appends entries in memory, preserving insert order.
type recordingHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.EditHistoryEntry
	nextID  int64
}

func (r *recordingHistoryRepo) Insert(ctx context.Context, e *domain.EditHistoryEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.ID = r.nextID
	r.entries = append(r.entries, *e)
	return e.ID, nil
}

func (r *recordingHistoryRepo) ListByDocument(ctx context.Context, documentID string) ([]domain.EditHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.EditHistoryEntry
	for _, e := range r.entries {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out, nil
}
