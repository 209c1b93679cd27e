package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/repository"

	"github.com/google/uuid"
)

type salesOrderRepository struct {
	db *sql.DB
}

func NewSalesOrderRepository(db *sql.DB) repository.SalesOrderRepository {
	return &salesOrderRepository{db: db}
}

func (r *salesOrderRepository) Create(ctx context.Context, o *domain.SalesOrder) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return &domain.PersistenceError{Op: "sales_order.marshal", Err: err}
	}
	now := time.Now().Format("2006-01-02")
	o.CreatedOn = now
	o.UpdatedOn = now
	query := `INSERT INTO sales_orders (id, tenant_id, reference, customer_name, status, notes, items, total_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.ExecContext(ctx, query, o.ID, o.TenantID, o.Reference, o.CustomerName, o.Status, o.Notes, items, o.TotalCents, o.CreatedOn, o.UpdatedOn)
	if err != nil {
		return &domain.PersistenceError{Op: "sales_order.create", Err: err}
	}
	return nil
}

func (r *salesOrderRepository) GetByID(ctx context.Context, id string) (*domain.SalesOrder, error) {
	query := `SELECT id, tenant_id, reference, customer_name, status, COALESCE(notes, ''), items, total_cents, created_on, updated_on
	          FROM sales_orders WHERE id = $1`
	o := &domain.SalesOrder{}
	var items []byte
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.TenantID, &o.Reference, &o.CustomerName, &o.Status, &o.Notes, &items, &o.TotalCents, &createdOn, &updatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.PersistenceError{Op: "sales_order.get", Err: err}
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, &domain.PersistenceError{Op: "sales_order.unmarshal", Err: err}
	}
	o.CreatedOn = createdOn.Format("2006-01-02")
	o.UpdatedOn = updatedOn.Format("2006-01-02")
	return o, nil
}

func (r *salesOrderRepository) Update(ctx context.Context, o *domain.SalesOrder) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return &domain.PersistenceError{Op: "sales_order.marshal", Err: err}
	}
	o.UpdatedOn = time.Now().Format("2006-01-02")
	query := `UPDATE sales_orders SET reference = $1, customer_name = $2, status = $3, notes = $4, items = $5, total_cents = $6, updated_on = $7
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query, o.Reference, o.CustomerName, o.Status, o.Notes, items, o.TotalCents, o.UpdatedOn, o.ID)
	if err != nil {
		return &domain.PersistenceError{Op: "sales_order.update", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *salesOrderRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.SalesOrder, error) {
	query := `SELECT id, tenant_id, reference, customer_name, status, COALESCE(notes, ''), items, total_cents, created_on, updated_on
	          FROM sales_orders WHERE tenant_id = $1 ORDER BY created_on DESC, reference`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "sales_order.list", Err: err}
	}
	defer rows.Close()

	var orders []domain.SalesOrder
	for rows.Next() {
		var o domain.SalesOrder
		var items []byte
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&o.ID, &o.TenantID, &o.Reference, &o.CustomerName, &o.Status, &o.Notes, &items, &o.TotalCents, &createdOn, &updatedOn); err != nil {
			return nil, &domain.PersistenceError{Op: "sales_order.scan", Err: err}
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, &domain.PersistenceError{Op: "sales_order.unmarshal", Err: err}
		}
		o.CreatedOn = createdOn.Format("2006-01-02")
		o.UpdatedOn = updatedOn.Format("2006-01-02")
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "sales_order.scan", Err: err}
	}
	return orders, nil
}
