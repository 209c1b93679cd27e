package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"bizdesk-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var auditTestColumns = []string{
	"id", "action", "target_id", "target_name", "actor_id", "actor_name", "details", "ip_address", "created_at",
}

func TestAuditInsertReturnsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db)

	entry := &domain.AuditLogEntry{
		Action:     domain.AuditActionBanTenant,
		TargetID:   "t-1",
		TargetName: "Acme Plumbing",
		ActorID:    "admin-1",
		ActorName:  "Ada Admin",
		Details:    "fraud",
		IPAddress:  "203.0.113.7",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO audit_log`)).
		WithArgs(entry.Action, entry.TargetID, entry.TargetName, entry.ActorID, entry.ActorName,
			entry.Details, entry.IPAddress, entry.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(77)))

	id, err := repo.Insert(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)
	assert.Equal(t, int64(77), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditQueryNoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(auditTestColumns).
		AddRow(int64(2), "ban_tenant", "t-1", "Acme", "admin-1", "Ada", "fraud", "", now).
		AddRow(int64(1), "approve_tenant", "t-1", "Acme", "admin-1", "Ada", "", "", now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM audit_log ORDER BY created_at DESC, id DESC`)).
		WillReturnRows(rows)

	entries, err := repo.Query(context.Background(), domain.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ID)
	assert.Equal(t, domain.AuditActionBanTenant, entries[0].Action)
}

func TestAuditQueryBuildsConditions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE action = $1 AND (target_name ILIKE $2 OR actor_name ILIKE $2 OR details ILIKE $2) AND created_at >= $3 AND created_at <= $4`)).
		WithArgs("suspend_tenant", "%acme%", from, to).
		WillReturnRows(sqlmock.NewRows(auditTestColumns))

	entries, err := repo.Query(context.Background(), domain.AuditLogFilter{
		Action: domain.AuditActionSuspendTenant,
		Search: "acme",
		From:   from,
		To:     to,
	})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
