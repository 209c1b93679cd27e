package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/repository"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

// insertAuditEntry is shared with the transactional paths (status changes,
// cascades) so every writer uses the same statement.
func insertAuditEntry(ctx context.Context, tx *sql.Tx, e *domain.AuditLogEntry) (int64, error) {
	query := `INSERT INTO audit_log (action, target_id, target_name, actor_id, actor_name, details, ip_address, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, query,
		e.Action, e.TargetID, e.TargetName, e.ActorID, e.ActorName, e.Details, e.IPAddress, e.CreatedAt).Scan(&id)
	return id, err
}

func (r *auditLogRepository) Insert(ctx context.Context, e *domain.AuditLogEntry) (int64, error) {
	query := `INSERT INTO audit_log (action, target_id, target_name, actor_id, actor_name, details, ip_address, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		e.Action, e.TargetID, e.TargetName, e.ActorID, e.ActorName, e.Details, e.IPAddress, e.CreatedAt).Scan(&id)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "audit.insert", Err: err}
	}
	e.ID = id
	return id, nil
}

func (r *auditLogRepository) Query(ctx context.Context, f domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	query := `SELECT id, action, target_id, target_name, actor_id, actor_name, details, COALESCE(ip_address, ''), created_at FROM audit_log`

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Action != "" {
		conds = append(conds, "action = "+arg(f.Action))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(target_name ILIKE %s OR actor_name ILIKE %s OR details ILIKE %s)", p, p, p))
	}
	if !f.From.IsZero() {
		conds = append(conds, "created_at >= "+arg(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "created_at <= "+arg(f.To))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "audit.query", Err: err}
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var e domain.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.TargetID, &e.TargetName, &e.ActorID, &e.ActorName, &e.Details, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, &domain.PersistenceError{Op: "audit.scan", Err: err}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "audit.scan", Err: err}
	}
	return entries, nil
}
