package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/repository"
)

type editHistoryRepository struct {
	db *sql.DB
}

func NewEditHistoryRepository(db *sql.DB) repository.EditHistoryRepository {
	return &editHistoryRepository{db: db}
}

func (r *editHistoryRepository) Insert(ctx context.Context, e *domain.EditHistoryEntry) (int64, error) {
	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "edit_history.marshal", Err: err}
	}
	query := `INSERT INTO edit_history (document_id, edited_by, edited_by_name, edited_at, changes)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err = r.db.QueryRowContext(ctx, query, e.DocumentID, e.EditedBy, e.EditedByName, e.EditedAt, changes).Scan(&id)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "edit_history.insert", Err: err}
	}
	e.ID = id
	return id, nil
}

// ListByDocument returns every entry for the document in append order. The
// document itself may no longer exist; history is kept for compliance.
func (r *editHistoryRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.EditHistoryEntry, error) {
	query := `SELECT id, document_id, edited_by, COALESCE(edited_by_name, ''), edited_at, changes
	          FROM edit_history WHERE document_id = $1 ORDER BY edited_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "edit_history.list", Err: err}
	}
	defer rows.Close()

	entries := []domain.EditHistoryEntry{}
	for rows.Next() {
		var e domain.EditHistoryEntry
		var changes []byte
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.EditedBy, &e.EditedByName, &e.EditedAt, &changes); err != nil {
			return nil, &domain.PersistenceError{Op: "edit_history.scan", Err: err}
		}
		if err := json.Unmarshal(changes, &e.Changes); err != nil {
			return nil, &domain.PersistenceError{Op: "edit_history.unmarshal", Err: err}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "edit_history.scan", Err: err}
	}
	return entries, nil
}
