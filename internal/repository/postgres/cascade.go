package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/repository"
)

type cascadeRepository struct {
	db *sql.DB
}

func NewCascadeRepository(db *sql.DB) repository.CascadeRepository {
	return &cascadeRepository{db: db}
}

// DeleteTenantCascade removes the tenant, its users and its sales orders and
// writes the single summarizing audit entry, all in one transaction. Edit
// history rows are left untouched so document history stays retrievable.
func (r *cascadeRepository) DeleteTenantCascade(ctx context.Context, tenantID string, entry *domain.AuditLogEntry) (*domain.CascadeSummary, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapCascadeErr(ctx, "cascade.begin", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, wrapCascadeErr(ctx, "cascade.delete_users", err)
	}
	usersRemoved, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM sales_orders WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, wrapCascadeErr(ctx, "cascade.delete_sales_orders", err)
	}
	ordersRemoved, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, tenantID)
	if err != nil {
		return nil, wrapCascadeErr(ctx, "cascade.delete_tenant", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.ErrNotFound
	}

	entry.Details = fmt.Sprintf("%s (removed %d users, %d sales orders)", entry.Details, usersRemoved, ordersRemoved)
	auditID, err := insertAuditEntry(ctx, tx, entry)
	if err != nil {
		return nil, wrapCascadeErr(ctx, "cascade.audit", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapCascadeErr(ctx, "cascade.commit", err)
	}
	entry.ID = auditID
	return &domain.CascadeSummary{
		TenantID:           tenantID,
		TenantName:         entry.TargetName,
		UsersRemoved:       usersRemoved,
		SalesOrdersRemoved: ordersRemoved,
		AuditEntryID:       auditID,
	}, nil
}

// DeleteUserCascade removes one user and writes its audit entry in one
// transaction. The last-admin check locks the tenant's entire admin set
// before counting, so concurrent deletes of different admins serialize and
// cannot both pass it.
func (r *cascadeRepository) DeleteUserCascade(ctx context.Context, userID string, entry *domain.AuditLogEntry) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrapCascadeErr(ctx, "cascade.begin", err)
	}
	defer tx.Rollback()

	var tenantID string
	var role domain.UserRole
	var tenantStatus domain.TenantStatus
	err = tx.QueryRowContext(ctx, `
		SELECT u.tenant_id, u.role, t.status
		FROM users u JOIN tenants t ON t.id = u.tenant_id
		WHERE u.id = $1
		FOR UPDATE OF u`, userID).Scan(&tenantID, &role, &tenantStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, wrapCascadeErr(ctx, "cascade.lookup_user", err)
	}

	if role == domain.UserRoleAdmin && tenantStatus == domain.TenantStatusActive {
		// FOR UPDATE on the whole admin set: a concurrent delete of another
		// admin holds its row locked, so this count waits for it and sees the
		// committed result instead of double-counting.
		admins, err := lockAndCountAdmins(ctx, tx, tenantID)
		if err != nil {
			return 0, wrapCascadeErr(ctx, "cascade.lock_admins", err)
		}
		if admins <= 1 {
			return 0, domain.ErrLastAdminProtection
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return 0, wrapCascadeErr(ctx, "cascade.delete_user", err)
	}

	auditID, err := insertAuditEntry(ctx, tx, entry)
	if err != nil {
		return 0, wrapCascadeErr(ctx, "cascade.audit", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, wrapCascadeErr(ctx, "cascade.commit", err)
	}
	entry.ID = auditID
	return auditID, nil
}

func lockAndCountAdmins(ctx context.Context, tx *sql.Tx, tenantID string) (int64, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM users WHERE tenant_id = $1 AND role = $2 FOR UPDATE`,
		tenantID, domain.UserRoleAdmin)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var admins int64
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		admins++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return admins, nil
}

func wrapCascadeErr(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return domain.ErrPartialFailure
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
