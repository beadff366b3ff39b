package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"realty-agent/domain"
	"realty-agent/repository"
)

const MaxImagesPerProperty = 20

// PropertyService manages the listing catalogue and its images.
type PropertyService struct {
	repo  repository.PropertyRepository
	blobs repository.BlobStore
	now   func() time.Time
}

func NewPropertyService(repo repository.PropertyRepository, blobs repository.BlobStore) *PropertyService {
	return &PropertyService{repo: repo, blobs: blobs, now: time.Now}
}

func (s *PropertyService) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	if filter.MinPrice < 0 || filter.MaxPrice < 0 {
		return nil, invalid("rango de precio inválido")
	}
	if filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, invalid("precio mínimo mayor que máximo")
	}
	return s.repo.List(ctx, filter)
}

func (s *PropertyService) Get(ctx context.Context, id string) (domain.Property, error) {
	return s.repo.Get(ctx, id)
}

// Create valida la propiedad, sube sus imágenes y la guarda.
func (s *PropertyService) Create(ctx context.Context, p domain.Property, uploads []domain.Upload) (domain.Property, error) {
	p = normalizeProperty(p)
	if err := validateProperty(p, len(uploads)); err != nil {
		return domain.Property{}, err
	}

	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()

	urls, err := s.upload(ctx, p.ID, uploads)
	if err != nil {
		return domain.Property{}, err
	}
	p.Images = append(p.Images, urls...)

	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Property{}, fmt.Errorf("creating property: %w", err)
	}
	slog.Info("property created", "id", p.ID, "images", len(p.Images))
	return p, nil
}

// Update reemplaza los datos de la propiedad. Las imágenes existentes se
// conservan y las nuevas se agregan al final.
func (s *PropertyService) Update(ctx context.Context, id string, p domain.Property, uploads []domain.Upload) (domain.Property, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}

	p = normalizeProperty(p)
	p.ID = current.ID
	p.CreatedAt = current.CreatedAt
	if p.Images == nil {
		p.Images = current.Images
	}
	if err := validateProperty(p, len(uploads)); err != nil {
		return domain.Property{}, err
	}

	urls, err := s.upload(ctx, p.ID, uploads)
	if err != nil {
		return domain.Property{}, err
	}
	p.Images = append(p.Images, urls...)

	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Property{}, fmt.Errorf("updating property: %w", err)
	}
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("property deleted", "id", id)
	return nil
}

// upload stores each file as prop_<id>_<ms>_<index>_<name>. The index keeps
// same-named files of one request from overwriting each other.
func (s *PropertyService) upload(ctx context.Context, id string, uploads []domain.Upload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	stamp := s.now().UnixMilli()
	for i, u := range uploads {
		if len(u.Data) == 0 {
			return nil, invalid("imagen vacía: %s", u.Name)
		}
		if !strings.HasPrefix(u.ContentType, "image/") {
			return nil, invalid("tipo de archivo no permitido: %s", u.ContentType)
		}
		name := fmt.Sprintf("prop_%s_%d_%d_%s", id, stamp, i, sanitizeFileName(u.Name))
		url, err := s.blobs.Put(ctx, repository.BucketPropertyImages, name, u.ContentType, bytes.NewReader(u.Data))
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", u.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func normalizeProperty(p domain.Property) domain.Property {
	p.Title = strings.TrimSpace(p.Title)
	p.Location = strings.TrimSpace(p.Location)
	if p.Type == "" {
		p.Type = domain.PropertyHouse
	}
	if p.Status == "" {
		p.Status = domain.StatusForSale
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}

func validateProperty(p domain.Property, newImages int) error {
	if p.Title == "" {
		return invalid("el título es obligatorio")
	}
	if !finite(p.Price, p.Area) || p.Price < 0 {
		return invalid("precio inválido")
	}
	if p.Area < 0 || p.Bedrooms < 0 || p.Bathrooms < 0 {
		return invalid("superficie, recámaras y baños no pueden ser negativos")
	}
	switch p.Type {
	case domain.PropertyCondo, domain.PropertyHouse, domain.PropertyLand:
	default:
		return invalid("tipo de propiedad inválido: %s", p.Type)
	}
	switch p.Status {
	case domain.StatusForSale, domain.StatusSold:
	default:
		return invalid("estatus de propiedad inválido: %s", p.Status)
	}
	if len(p.Images)+newImages > MaxImagesPerProperty {
		return invalid("máximo %d imágenes por propiedad", MaxImagesPerProperty)
	}
	return nil
}

// sanitizeFileName keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with an underscore.
func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if clean == "" || clean == "." || clean == ".." {
		return "image"
	}
	return clean
}
