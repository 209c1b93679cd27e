package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/locks"
	"bizdesk-backend/internal/metrics"
	"bizdesk-backend/internal/repository"
)

type editHistoryService struct {
	historyRepo repository.EditHistoryRepository
	docLocks    *locks.KeyedMutex
	now         func() time.Time
}

func NewEditHistoryService(historyRepo repository.EditHistoryRepository) EditHistoryService {
	return &editHistoryService{
		historyRepo: historyRepo,
		docLocks:    locks.NewKeyedMutex(),
		now:         time.Now,
	}
}

// Diff compares two revisions of the same document type and returns one
// FieldChange per changed field, in struct declaration order. Fields are
// selected by the `history` tag; structural fields yield a marker without
// values so entries stay bounded.
func (s *editHistoryService) Diff(oldDoc, newDoc any) ([]domain.FieldChange, error) {
	ov := reflect.Indirect(reflect.ValueOf(oldDoc))
	nv := reflect.Indirect(reflect.ValueOf(newDoc))
	if !ov.IsValid() || !nv.IsValid() {
		return nil, fmt.Errorf("diff requires two non-nil documents")
	}
	if ov.Type() != nv.Type() {
		return nil, fmt.Errorf("cannot diff %s against %s", ov.Type(), nv.Type())
	}
	if ov.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot diff non-struct type %s", ov.Type())
	}

	var changes []domain.FieldChange
	t := ov.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("history")
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		name := parts[0]
		structural := len(parts) > 1 && parts[1] == "structural"

		oldVal := ov.Field(i).Interface()
		newVal := nv.Field(i).Interface()
		if reflect.DeepEqual(oldVal, newVal) {
			continue
		}
		if structural {
			changes = append(changes, domain.FieldChange{Field: name, Structural: true})
			continue
		}
		changes = append(changes, domain.FieldChange{
			Field:    name,
			OldValue: fmt.Sprintf("%v", oldVal),
			NewValue: fmt.Sprintf("%v", newVal),
		})
	}
	return changes, nil
}

// Append writes one history entry for the document. Appends to the same
// document are serialized through a per-document lock so the stored order
// always matches the commit order; unrelated documents never contend.
func (s *editHistoryService) Append(ctx context.Context, documentID string, actor domain.Actor, changes []domain.FieldChange) (*domain.EditHistoryEntry, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document id is required")
	}
	if len(changes) == 0 {
		return nil, nil
	}

	s.docLocks.Lock(documentID)
	defer s.docLocks.Unlock(documentID)

	entry := &domain.EditHistoryEntry{
		DocumentID:   documentID,
		EditedBy:     actor.ID,
		EditedByName: actor.Name,
		EditedAt:     s.now().UTC(),
		Changes:      changes,
	}
	if _, err := s.historyRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}
	metrics.HistoryAppendsTotal.Inc()
	return entry, nil
}

// History succeeds even when the owning document no longer exists; orphaned
// history stays retrievable by id for compliance.
func (s *editHistoryService) History(ctx context.Context, documentID string) ([]domain.EditHistoryEntry, error) {
	entries, err := s.historyRepo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.EditHistoryEntry{}
	}
	return entries, nil
}
