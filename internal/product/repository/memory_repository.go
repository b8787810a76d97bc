package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"backoffice/internal/domain"
	apperrors "backoffice/internal/errors"
)

// MemoryRepository keeps products in process. Every read and write works on
// a copy, and Mutate holds the write lock for the whole read-modify-write.
type MemoryRepository struct {
	mu sync.RWMutex
	m  map[string]domain.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: make(map[string]domain.Product)}
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.m[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceProduct, id)
	}
	c := p.Clone()
	return &c, nil
}

func (r *MemoryRepository) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	title := strings.ToLower(filter.Title)
	var products []domain.Product
	for _, p := range r.m {
		if title != "" && !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		products = append(products, p.Clone())
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (r *MemoryRepository) Create(_ context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.m[p.ID]; exists {
		return apperrors.NewInternalError(fmt.Sprintf("product %s already exists", p.ID), nil)
	}
	r.m[p.ID] = p.Clone()
	return nil
}

func (r *MemoryRepository) Mutate(_ context.Context, id string, fn func(p *domain.Product) error) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.m[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceProduct, id)
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()
	r.m[id] = next

	out := next.Clone()
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return apperrors.NewResourceNotFoundError(apperrors.ResourceProduct, id)
	}
	delete(r.m, id)
	return nil
}
