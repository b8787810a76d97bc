package repository

import (
	"context"
	"sync"
	"time"

	"backoffice/internal/domain"
	apperrors "backoffice/internal/errors"
)

// MemoryOrderRepository is the in-process order store used by the memory
// store driver. Orders come from the storefront, so Seed is the only way in.
type MemoryOrderRepository struct {
	mu sync.RWMutex
	m  map[string]domain.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{m: make(map[string]domain.Order)}
}

func (r *MemoryOrderRepository) Seed(orders ...domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range orders {
		r.m[o.ID] = o
	}
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.m[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceOrder, id)
	}
	return &o, nil
}

func (r *MemoryOrderRepository) UpdateFlags(_ context.Context, id string, flags domain.OrderFlags) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.m[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceOrder, id)
	}
	o.Apply(flags)
	o.UpdatedAt = time.Now().UTC()
	r.m[id] = o
	return &o, nil
}

func (r *MemoryOrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return apperrors.NewResourceNotFoundError(apperrors.ResourceOrder, id)
	}
	delete(r.m, id)
	return nil
}
