package service

import (
	"context"
	"errors"
	"testing"

	"bizdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	repo := new(MockTenantRepo)
	svc := NewTenantService(repo)

	assert.Error(t, svc.Register(context.Background(), &domain.Tenant{ContactEmail: "x@y.z"}))
	assert.Error(t, svc.Register(context.Background(), &domain.Tenant{Name: "Acme"}))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterWritesNoAuditEntry(t *testing.T) {
	repo := new(MockTenantRepo)
	svc := NewTenantService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := svc.Register(context.Background(), &domain.Tenant{
		Name:         "Acme Plumbing",
		ContactEmail: "bob@acme.example",
	})
	require.NoError(t, err)

	// Registration is the only unaudited write: exactly one repo call, and
	// none of the audit-carrying paths were touched.
	require.Len(t, repo.Calls, 1)
	assert.Equal(t, "Create", repo.Calls[0].Method)
}

func TestUpdateProfileAudits(t *testing.T) {
	repo := new(MockTenantRepo)
	svc := NewTenantService(repo)

	repo.On("GetByID", mock.Anything, "t-1").Return(activeTenant(), nil)
	repo.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated := activeTenant()
	updated.Name = "Acme Plumbing & Heating"
	require.NoError(t, svc.UpdateProfile(context.Background(), testActor, updated))

	entry := repo.Calls[1].Arguments.Get(2).(*domain.AuditLogEntry)
	assert.Equal(t, domain.AuditActionUpdateTenant, entry.Action)
	assert.Equal(t, testActor.ID, entry.ActorID)
	assert.Contains(t, entry.Details, "Acme Plumbing")
	assert.Contains(t, entry.Details, "Acme Plumbing & Heating")
}

func TestUpdateProfileWriteFailurePropagates(t *testing.T) {
	repo := new(MockTenantRepo)
	svc := NewTenantService(repo)

	repo.On("GetByID", mock.Anything, "t-1").Return(activeTenant(), nil)
	repo.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.PersistenceError{Op: "tenant.update_profile", Err: errors.New("audit insert failed")})

	err := svc.UpdateProfile(context.Background(), testActor, activeTenant())
	var perr *domain.PersistenceError
	assert.ErrorAs(t, err, &perr)
}
