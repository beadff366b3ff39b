package repository

import (
	"context"
	"maps"
	"slices"
	"sync"

	"realty-agent/domain"
)

// LeadRepositoryMemory is an in-memory implementation of LeadRepository.
type LeadRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Lead
}

func NewLeadRepositoryMemory() *LeadRepositoryMemory {
	return &LeadRepositoryMemory{data: make(map[string]domain.Lead)}
}

func (r *LeadRepositoryMemory) List(_ context.Context) ([]domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Lead, 0, len(r.data))
	for _, l := range r.data {
		out = append(out, cloneLead(l))
	}
	slices.SortFunc(out, func(a, b domain.Lead) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *LeadRepositoryMemory) Get(_ context.Context, id string) (domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.data[id]
	if !ok {
		return domain.Lead{}, ErrNotFound
	}
	return cloneLead(l), nil
}

func (r *LeadRepositoryMemory) Create(_ context.Context, l domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[l.ID] = cloneLead(l)
	return nil
}

func (r *LeadRepositoryMemory) Update(_ context.Context, l domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[l.ID]; !ok {
		return ErrNotFound
	}
	r.data[l.ID] = cloneLead(l)
	return nil
}

func (r *LeadRepositoryMemory) CountByStatus(_ context.Context, status domain.LeadStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, l := range r.data {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *LeadRepositoryMemory) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data), nil
}

func cloneLead(l domain.Lead) domain.Lead {
	l.QualificationResponses = maps.Clone(l.QualificationResponses)
	return l
}

// SettingsRepositoryMemory is an in-memory implementation of SettingsRepository.
type SettingsRepositoryMemory struct {
	mu       sync.RWMutex
	settings *domain.SiteSettings
}

func NewSettingsRepositoryMemory() *SettingsRepositoryMemory {
	return &SettingsRepositoryMemory{}
}

func (r *SettingsRepositoryMemory) Get(_ context.Context) (domain.SiteSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return domain.SiteSettings{}, ErrNotFound
	}
	return *r.settings, nil
}

func (r *SettingsRepositoryMemory) Save(_ context.Context, s domain.SiteSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = &s
	return nil
}
