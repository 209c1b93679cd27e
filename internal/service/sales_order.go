package service

import (
	"context"
	"fmt"
	"strings"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/locks"
	"bizdesk-backend/internal/repository"
)

type salesOrderService struct {
	orderRepo repository.SalesOrderRepository
	history   EditHistoryService
	// orderLocks serializes the whole update per document so the committed
	// order of mutations matches the order of their history entries.
	orderLocks *locks.KeyedMutex
}

func NewSalesOrderService(orderRepo repository.SalesOrderRepository, history EditHistoryService) SalesOrderService {
	return &salesOrderService{
		orderRepo:  orderRepo,
		history:    history,
		orderLocks: locks.NewKeyedMutex(),
	}
}

func (s *salesOrderService) Create(ctx context.Context, actor domain.Actor, o *domain.SalesOrder) error {
	if strings.TrimSpace(o.Reference) == "" {
		return fmt.Errorf("sales order reference is required")
	}
	o.Recalculate()
	return s.orderRepo.Create(ctx, o)
}

func (s *salesOrderService) Get(ctx context.Context, id string) (*domain.SalesOrder, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// Update persists the new revision and appends the field diff to the edit
// history. The mutation and its history entry run under the document lock;
// an unchanged document writes no history entry.
func (s *salesOrderService) Update(ctx context.Context, actor domain.Actor, o *domain.SalesOrder) (*domain.SalesOrder, []domain.FieldChange, error) {
	s.orderLocks.Lock(o.ID)
	defer s.orderLocks.Unlock(o.ID)

	existing, err := s.orderRepo.GetByID(ctx, o.ID)
	if err != nil {
		return nil, nil, err
	}

	o.TenantID = existing.TenantID
	o.CreatedOn = existing.CreatedOn
	o.Recalculate()

	changes, err := s.history.Diff(existing, o)
	if err != nil {
		return nil, nil, err
	}
	if len(changes) == 0 {
		return existing, nil, nil
	}

	if err := s.orderRepo.Update(ctx, o); err != nil {
		return nil, nil, err
	}
	if _, err := s.history.Append(ctx, o.ID, actor, changes); err != nil {
		return nil, nil, err
	}
	return o, changes, nil
}
