package repository

import (
	"context"

	"realty-agent/domain"
)

// PropertyRepository persists listings. List returns newest first.
type PropertyRepository interface {
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	Get(ctx context.Context, id string) (domain.Property, error)
	Create(ctx context.Context, p domain.Property) error
	Update(ctx context.Context, p domain.Property) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// LeadRepository persists leads. List returns newest first.
type LeadRepository interface {
	List(ctx context.Context) ([]domain.Lead, error)
	Get(ctx context.Context, id string) (domain.Lead, error)
	Create(ctx context.Context, l domain.Lead) error
	Update(ctx context.Context, l domain.Lead) error
	CountByStatus(ctx context.Context, status domain.LeadStatus) (int, error)
	Count(ctx context.Context) (int, error)
}

// SettingsRepository persists the single site settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
	Save(ctx context.Context, s domain.SiteSettings) error
}
