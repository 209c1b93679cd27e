package service

import (
	"context"
	"testing"
	"time"

	"bizdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCascadeForTest(cascadeRepo *MockCascadeRepo, tenantRepo *MockTenantRepo, userRepo *MockUserRepo) *cascadeService {
	return &cascadeService{
		cascadeRepo: cascadeRepo,
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		guard:       NewConfirmationGuard(),
		timeout:     30 * time.Second,
		now:         time.Now,
	}
}

func TestDeleteTenantRequiresConfirmation(t *testing.T) {
	cascadeRepo := new(MockCascadeRepo)
	tenantRepo := new(MockTenantRepo)
	svc := newCascadeForTest(cascadeRepo, tenantRepo, new(MockUserRepo))

	_, err := svc.DeleteTenant(context.Background(), testActor, "t-1", "delete", "gdpr request")
	assert.ErrorIs(t, err, domain.ErrConfirmationMismatch)

	// Nothing was read or removed.
	tenantRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	cascadeRepo.AssertNotCalled(t, "DeleteTenantCascade", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteTenantSuccess(t *testing.T) {
	cascadeRepo := new(MockCascadeRepo)
	tenantRepo := new(MockTenantRepo)
	svc := newCascadeForTest(cascadeRepo, tenantRepo, new(MockUserRepo))

	tenantRepo.On("GetByID", mock.Anything, "t-1").Return(activeTenant(), nil)
	cascadeRepo.On("DeleteTenantCascade", mock.Anything, "t-1", mock.Anything).Return(&domain.CascadeSummary{
		TenantID:           "t-1",
		TenantName:         "Acme Plumbing",
		UsersRemoved:       3,
		SalesOrdersRemoved: 12,
		AuditEntryID:       201,
	}, nil)

	summary, err := svc.DeleteTenant(context.Background(), testActor, "t-1", "DELETE", "gdpr request")
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.UsersRemoved)
	assert.Equal(t, int64(12), summary.SalesOrdersRemoved)

	entry := cascadeRepo.Calls[0].Arguments.Get(2).(*domain.AuditLogEntry)
	assert.Equal(t, domain.AuditActionDeleteTenant, entry.Action)
	assert.Equal(t, "Acme Plumbing", entry.TargetName)
	assert.Equal(t, "gdpr request", entry.Details)
	assert.Equal(t, testActor.IPAddress, entry.IPAddress)
	cascadeRepo.AssertExpectations(t)
}

func TestDeleteTenantNotFound(t *testing.T) {
	cascadeRepo := new(MockCascadeRepo)
	tenantRepo := new(MockTenantRepo)
	svc := newCascadeForTest(cascadeRepo, tenantRepo, new(MockUserRepo))

	tenantRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.DeleteTenant(context.Background(), testActor, "ghost", "DELETE", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	cascadeRepo.AssertNotCalled(t, "DeleteTenantCascade", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteUserLastAdminProtected(t *testing.T) {
	cascadeRepo := new(MockCascadeRepo)
	userRepo := new(MockUserRepo)
	svc := newCascadeForTest(cascadeRepo, new(MockTenantRepo), userRepo)

	userRepo.On("GetByID", mock.Anything, "u-1").Return(&domain.User{
		ID:       "u-1",
		TenantID: "t-1",
		Name:     "Only Admin",
		Role:     domain.UserRoleAdmin,
	}, nil)
	cascadeRepo.On("DeleteUserCascade", mock.Anything, "u-1", mock.Anything).
		Return(int64(0), domain.ErrLastAdminProtection)

	err := svc.DeleteUser(context.Background(), testActor, "u-1", "DELETE", "offboarding")
	assert.ErrorIs(t, err, domain.ErrLastAdminProtection)
}

func TestDeleteUserSuccess(t *testing.T) {
	cascadeRepo := new(MockCascadeRepo)
	userRepo := new(MockUserRepo)
	svc := newCascadeForTest(cascadeRepo, new(MockTenantRepo), userRepo)

	userRepo.On("GetByID", mock.Anything, "u-2").Return(&domain.User{
		ID:       "u-2",
		TenantID: "t-1",
		Name:     "Marc Member",
		Role:     domain.UserRoleMember,
	}, nil)
	cascadeRepo.On("DeleteUserCascade", mock.Anything, "u-2", mock.Anything).Return(int64(202), nil)

	err := svc.DeleteUser(context.Background(), testActor, "u-2", "DELETE", "offboarding")
	require.NoError(t, err)

	entry := cascadeRepo.Calls[0].Arguments.Get(2).(*domain.AuditLogEntry)
	assert.Equal(t, domain.AuditActionDeleteUser, entry.Action)
	assert.Equal(t, "Marc Member", entry.TargetName)
}

func TestDeleteUserRequiresConfirmation(t *testing.T) {
	cascadeRepo := new(MockCascadeRepo)
	userRepo := new(MockUserRepo)
	svc := newCascadeForTest(cascadeRepo, new(MockTenantRepo), userRepo)

	err := svc.DeleteUser(context.Background(), testActor, "u-1", "", "")
	assert.ErrorIs(t, err, domain.ErrConfirmationMismatch)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
