package repository

import (
	"context"
	"slices"
	"sync"

	"realty-agent/domain"
)

// PropertyRepositoryMemory is an in-memory implementation of PropertyRepository.
type PropertyRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Property
}

func NewPropertyRepositoryMemory() *PropertyRepositoryMemory {
	return &PropertyRepositoryMemory{data: make(map[string]domain.Property)}
}

func (r *PropertyRepositoryMemory) List(_ context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Property, 0, len(r.data))
	for _, p := range r.data {
		if filter.Match(p) {
			out = append(out, cloneProperty(p))
		}
	}
	slices.SortFunc(out, func(a, b domain.Property) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *PropertyRepositoryMemory) Get(_ context.Context, id string) (domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.data[id]
	if !ok {
		return domain.Property{}, ErrNotFound
	}
	return cloneProperty(p), nil
}

func (r *PropertyRepositoryMemory) Create(_ context.Context, p domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.ID] = cloneProperty(p)
	return nil
}

func (r *PropertyRepositoryMemory) Update(_ context.Context, p domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[p.ID]; !ok {
		return ErrNotFound
	}
	r.data[p.ID] = cloneProperty(p)
	return nil
}

func (r *PropertyRepositoryMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *PropertyRepositoryMemory) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data), nil
}

func cloneProperty(p domain.Property) domain.Property {
	p.Features = slices.Clone(p.Features)
	p.Images = slices.Clone(p.Images)
	return p
}
