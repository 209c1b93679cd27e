package postgres

import (
	"database/sql"

	"bizdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.TenantRepository
	repository.UserRepository
	repository.AuditLogRepository
	repository.EditHistoryRepository
	repository.SalesOrderRepository
	repository.CascadeRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		TenantRepository:      NewTenantRepository(db),
		UserRepository:        NewUserRepository(db),
		AuditLogRepository:    NewAuditLogRepository(db),
		EditHistoryRepository: NewEditHistoryRepository(db),
		SalesOrderRepository:  NewSalesOrderRepository(db),
		CascadeRepository:     NewCascadeRepository(db),
	}
}
