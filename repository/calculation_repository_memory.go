package repository

import (
	"context"
	"sync"

	"realty-agent/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
type CalculationRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.Calculation
}

// NewCalculationRepositoryMemory creates a new in-memory calculation repository.
func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		data: []domain.Calculation{},
	}
}

// Save stores the calculation in memory.
func (r *CalculationRepositoryMemory) Save(_ context.Context, calc domain.Calculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, calc)
	return nil
}

func (r *CalculationRepositoryMemory) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data), nil
}
