package repository

import (
	"context"

	"realty-agent/domain"
)

// CalculationRepository records calculator runs.
type CalculationRepository interface {
	Save(ctx context.Context, calc domain.Calculation) error
	Count(ctx context.Context) (int, error)
}
