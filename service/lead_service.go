package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"realty-agent/domain"
	"realty-agent/repository"
)

// LeadNotifier is told about every lead captured from the public site.
type LeadNotifier interface {
	LeadCreated(ctx context.Context, lead domain.Lead, newLeads int)
}

type LeadService struct {
	repo     repository.LeadRepository
	notifier LeadNotifier
	now      func() time.Time
}

// NewLeadService creates a LeadService. notifier may be nil.
func NewLeadService(repo repository.LeadRepository, notifier LeadNotifier) *LeadService {
	return &LeadService{repo: repo, notifier: notifier, now: time.Now}
}

// Create registra un prospecto desde el sitio público. El estatus siempre
// inicia en "new".
func (s *LeadService) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Phone = strings.TrimSpace(lead.Phone)

	if lead.Name == "" {
		return domain.Lead{}, invalid("el nombre es obligatorio")
	}
	if lead.Email == "" && lead.Phone == "" {
		return domain.Lead{}, invalid("se requiere correo o teléfono")
	}
	if lead.Email != "" {
		if _, err := mail.ParseAddress(lead.Email); err != nil {
			return domain.Lead{}, invalid("correo inválido: %s", lead.Email)
		}
	}

	lead.ID = uuid.NewString()
	lead.Status = domain.LeadNew
	lead.Notes = ""
	lead.CreatedAt = s.now().UTC()
	if lead.QualificationResponses == nil {
		lead.QualificationResponses = map[string]any{}
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("creating lead: %w", err)
	}
	slog.Info("lead captured", "id", lead.ID, "property_id", lead.PropertyID)

	if s.notifier != nil {
		newLeads, err := s.CountNew(ctx)
		if err != nil {
			slog.Warn("failed to count new leads", "error", err)
		}
		s.notifier.LeadCreated(ctx, lead, newLeads)
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	return s.repo.List(ctx)
}

func (s *LeadService) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (domain.Lead, error) {
	return s.Update(ctx, id, domain.LeadUpdate{Status: &status})
}

func (s *LeadService) UpdateNotes(ctx context.Context, id, notes string) (domain.Lead, error) {
	return s.Update(ctx, id, domain.LeadUpdate{Notes: &notes})
}

// Update aplica los campos presentes en u.
func (s *LeadService) Update(ctx context.Context, id string, u domain.LeadUpdate) (domain.Lead, error) {
	if u.Status == nil && u.Notes == nil {
		return domain.Lead{}, invalid("no hay cambios que aplicar")
	}
	if u.Status != nil && !u.Status.Valid() {
		return domain.Lead{}, invalid("estatus inválido: %s", *u.Status)
	}

	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}
	if u.Status != nil {
		lead.Status = *u.Status
	}
	if u.Notes != nil {
		lead.Notes = *u.Notes
	}
	if err := s.repo.Update(ctx, lead); err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}

func (s *LeadService) CountNew(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, domain.LeadNew)
}
