package service

import (
	"context"

	"realty-agent/domain"
	"realty-agent/repository"
)

type DashboardService struct {
	properties   repository.PropertyRepository
	leads        repository.LeadRepository
	calculations repository.CalculationRepository
}

func NewDashboardService(
	properties repository.PropertyRepository,
	leads repository.LeadRepository,
	calculations repository.CalculationRepository,
) *DashboardService {
	return &DashboardService{properties: properties, leads: leads, calculations: calculations}
}

func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	var err error

	if stats.Properties, err = s.properties.Count(ctx); err != nil {
		return domain.DashboardStats{}, err
	}
	if stats.Leads, err = s.leads.Count(ctx); err != nil {
		return domain.DashboardStats{}, err
	}
	if stats.NewLeads, err = s.leads.CountByStatus(ctx, domain.LeadNew); err != nil {
		return domain.DashboardStats{}, err
	}
	if stats.Calculations, err = s.calculations.Count(ctx); err != nil {
		return domain.DashboardStats{}, err
	}
	return stats, nil
}
