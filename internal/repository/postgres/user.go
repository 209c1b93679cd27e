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

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedOn = time.Now().Format("2006-01-02")
	query := `INSERT INTO users (id, tenant_id, email, name, password_hash, role, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.TenantID, u.Email, u.Name, u.PasswordHash, u.Role, u.CreatedOn)
	if err != nil {
		return &domain.PersistenceError{Op: "user.create", Err: err}
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, tenant_id, email, name, password_hash, role, created_on FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, tenant_id, email, name, password_hash, role, created_on FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error) {
	query := `SELECT id, tenant_id, email, name, password_hash, role, created_on FROM users WHERE tenant_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "user.list", Err: err}
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var createdOn time.Time
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &createdOn); err != nil {
			return nil, &domain.PersistenceError{Op: "user.scan", Err: err}
		}
		u.CreatedOn = createdOn.Format("2006-01-02")
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "user.scan", Err: err}
	}
	return users, nil
}

func (r *userRepository) CountAdmins(ctx context.Context, tenantID string) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE tenant_id = $1 AND role = $2`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, tenantID, domain.UserRoleAdmin).Scan(&n); err != nil {
		return 0, &domain.PersistenceError{Op: "user.count_admins", Err: err}
	}
	return n, nil
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var createdOn time.Time
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &createdOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.PersistenceError{Op: "user.get", Err: err}
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	return u, nil
}
