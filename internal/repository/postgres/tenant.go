package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/repository"

	"github.com/google/uuid"
)

type tenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

const tenantColumns = `id, name, contact_name, contact_email, status, COALESCE(status_reason, ''), status_changed_at, COALESCE(status_changed_by, ''), suspension_expires_at, status_version, created_on`

func (r *tenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Status = domain.TenantStatusPendingApproval
	t.StatusVersion = 1
	t.StatusChangedAt = time.Now().UTC()
	t.CreatedOn = time.Now().Format("2006-01-02")
	query := `INSERT INTO tenants (id, name, contact_name, contact_email, status, status_reason, status_changed_at, status_changed_by, suspension_expires_at, status_version, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.ContactName, t.ContactEmail, t.Status, t.StatusReason,
		t.StatusChangedAt, t.StatusChangedBy, t.SuspensionExpiresAt, t.StatusVersion, t.CreatedOn)
	if err != nil {
		return &domain.PersistenceError{Op: "tenant.create", Err: err}
	}
	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	t, err := scanTenant(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.PersistenceError{Op: "tenant.get", Err: err}
	}
	return t, nil
}

func (r *tenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_on DESC, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "tenant.list", Err: err}
	}
	defer rows.Close()
	return collectTenants(rows)
}

func (r *tenantRepository) ListSuspensionExpired(ctx context.Context, asOf time.Time) ([]domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants
	          WHERE status = $1 AND suspension_expires_at IS NOT NULL AND suspension_expires_at <= $2`
	rows, err := r.db.QueryContext(ctx, query, domain.TenantStatusSuspended, asOf)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "tenant.list_suspension_expired", Err: err}
	}
	defer rows.Close()
	return collectTenants(rows)
}

// UpdateProfile commits the profile fields and the update_tenant audit entry
// together; a failed audit write rolls the profile change back.
func (r *tenantRepository) UpdateProfile(ctx context.Context, t *domain.Tenant, entry *domain.AuditLogEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.PersistenceError{Op: "tenant.update_profile", Err: err}
	}
	defer tx.Rollback()

	query := `UPDATE tenants SET name = $1, contact_name = $2, contact_email = $3 WHERE id = $4`
	res, err := tx.ExecContext(ctx, query, t.Name, t.ContactName, t.ContactEmail, t.ID)
	if err != nil {
		return &domain.PersistenceError{Op: "tenant.update_profile", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	auditID, err := insertAuditEntry(ctx, tx, entry)
	if err != nil {
		return &domain.PersistenceError{Op: "tenant.update_profile", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{Op: "tenant.update_profile", Err: err}
	}
	entry.ID = auditID
	return nil
}

// ApplyStatusChange is the commit point of a lifecycle transition: the status
// update and the audit insert share one transaction, and the update is
// guarded by the status_version compare-and-swap. Zero rows updated means a
// concurrent transition won; the caller gets ErrStaleState and nothing is
// written.
func (r *tenantRepository) ApplyStatusChange(ctx context.Context, t *domain.Tenant, expectedVersion int64, entry *domain.AuditLogEntry) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrapStatusChangeErr(ctx, err)
	}
	defer tx.Rollback()

	update := `UPDATE tenants
	           SET status = $1, status_reason = $2, status_changed_at = $3, status_changed_by = $4,
	               suspension_expires_at = $5, status_version = status_version + 1
	           WHERE id = $6 AND status_version = $7`
	res, err := tx.ExecContext(ctx, update,
		t.Status, t.StatusReason, t.StatusChangedAt, t.StatusChangedBy,
		t.SuspensionExpiresAt, t.ID, expectedVersion)
	if err != nil {
		return 0, wrapStatusChangeErr(ctx, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapStatusChangeErr(ctx, err)
	}
	if n == 0 {
		return 0, domain.ErrStaleState
	}

	auditID, err := insertAuditEntry(ctx, tx, entry)
	if err != nil {
		return 0, wrapStatusChangeErr(ctx, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, wrapStatusChangeErr(ctx, err)
	}
	t.StatusVersion = expectedVersion + 1
	entry.ID = auditID
	return auditID, nil
}

func wrapStatusChangeErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return domain.ErrTimeout
	}
	return &domain.PersistenceError{Op: "tenant.apply_status_change", Err: err}
}

func scanTenant(row *sql.Row) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	var expires sql.NullTime
	var createdOn time.Time
	err := row.Scan(&t.ID, &t.Name, &t.ContactName, &t.ContactEmail, &t.Status, &t.StatusReason,
		&t.StatusChangedAt, &t.StatusChangedBy, &expires, &t.StatusVersion, &createdOn)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		exp := expires.Time
		t.SuspensionExpiresAt = &exp
	}
	t.CreatedOn = createdOn.Format("2006-01-02")
	return t, nil
}

func collectTenants(rows *sql.Rows) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		var expires sql.NullTime
		var createdOn time.Time
		if err := rows.Scan(&t.ID, &t.Name, &t.ContactName, &t.ContactEmail, &t.Status, &t.StatusReason,
			&t.StatusChangedAt, &t.StatusChangedBy, &expires, &t.StatusVersion, &createdOn); err != nil {
			return nil, &domain.PersistenceError{Op: "tenant.scan", Err: err}
		}
		if expires.Valid {
			exp := expires.Time
			t.SuspensionExpiresAt = &exp
		}
		t.CreatedOn = createdOn.Format("2006-01-02")
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "tenant.scan", Err: err}
	}
	return tenants, nil
}
