package service

import (
	"context"
	"testing"

	"bizdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPasswordAndAudits(t *testing.T) {
	userRepo := new(MockUserRepo)
	tenantRepo := new(MockTenantRepo)
	auditRepo := new(MockAuditRepo)
	svc := NewUserService(userRepo, tenantRepo, NewAuditService(auditRepo))

	tenantRepo.On("GetByID", mock.Anything, "t-1").Return(activeTenant(), nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(301), nil)

	u := &domain.User{
		ID:       "u-1",
		TenantID: "t-1",
		Email:    "new@acme.example",
		Name:     "New Admin",
		Role:     domain.UserRoleAdmin,
	}
	created, err := svc.CreateUser(context.Background(), testActor, u, "s3cret-passw0rd")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-passw0rd", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-passw0rd")))

	entry := auditRepo.Calls[0].Arguments.Get(1).(*domain.AuditLogEntry)
	assert.Equal(t, domain.AuditActionCreateUser, entry.Action)
	assert.Equal(t, "u-1", entry.TargetID)
	assert.Contains(t, entry.Details, "admin")
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(new(MockUserRepo), new(MockTenantRepo), NewAuditService(new(MockAuditRepo)))

	_, err := svc.CreateUser(context.Background(), testActor, &domain.User{
		TenantID: "t-1", Role: domain.UserRoleMember,
	}, "long-enough-pass")
	assert.Error(t, err, "missing email")

	_, err = svc.CreateUser(context.Background(), testActor, &domain.User{
		TenantID: "t-1", Email: "x@y.z", Role: "owner",
	}, "long-enough-pass")
	assert.Error(t, err, "unknown role")

	_, err = svc.CreateUser(context.Background(), testActor, &domain.User{
		TenantID: "t-1", Email: "x@y.z", Role: domain.UserRoleMember,
	}, "short")
	assert.Error(t, err, "short password")
}

func TestCreateUserUnknownTenant(t *testing.T) {
	userRepo := new(MockUserRepo)
	tenantRepo := new(MockTenantRepo)
	svc := NewUserService(userRepo, tenantRepo, NewAuditService(new(MockAuditRepo)))

	tenantRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.CreateUser(context.Background(), testActor, &domain.User{
		TenantID: "ghost", Email: "x@y.z", Role: domain.UserRoleMember,
	}, "long-enough-pass")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
