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

func TestEditHistoryInsertMarshalsChanges(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEditHistoryRepository(db)

	entry := &domain.EditHistoryEntry{
		DocumentID:   "so-1",
		EditedBy:     "admin-1",
		EditedByName: "Ada Admin",
		EditedAt:     time.Now().UTC(),
		Changes: []domain.FieldChange{
			{Field: "customer_name", OldValue: "A", NewValue: "B"},
			{Field: "items", Structural: true},
		},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO edit_history`)).
		WithArgs(entry.DocumentID, entry.EditedBy, entry.EditedByName, entry.EditedAt, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	id, err := repo.Insert(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, int64(9), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditHistoryListByDocument(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEditHistoryRepository(db)

	earlier := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := earlier.Add(5 * time.Minute)
	rows := sqlmock.NewRows([]string{"id", "document_id", "edited_by", "edited_by_name", "edited_at", "changes"}).
		AddRow(int64(1), "so-1", "admin-1", "Ada", earlier,
			[]byte(`[{"field":"customer_name","old_value":"A","new_value":"B"}]`)).
		AddRow(int64(2), "so-1", "admin-2", "Bea", later,
			[]byte(`[{"field":"total_cents","structural":true}]`))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM edit_history WHERE document_id = $1 ORDER BY edited_at ASC, id ASC`)).
		WithArgs("so-1").
		WillReturnRows(rows)

	entries, err := repo.ListByDocument(context.Background(), "so-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "customer_name", entries[0].Changes[0].Field)
	assert.Equal(t, "B", entries[0].Changes[0].NewValue)
	assert.True(t, entries[1].Changes[0].Structural)
	assert.True(t, entries[0].EditedAt.Before(entries[1].EditedAt))
}

func TestEditHistoryListUnknownDocument(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEditHistoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM edit_history`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "edited_by", "edited_by_name", "edited_at", "changes"}))

	entries, err := repo.ListByDocument(context.Background(), "ghost")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
