package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"realty-agent/domain"
	"realty-agent/repository"
)

type SettingsService struct {
	repo  repository.SettingsRepository
	blobs repository.BlobStore
	now   func() time.Time
}

func NewSettingsService(repo repository.SettingsRepository, blobs repository.BlobStore) *SettingsService {
	return &SettingsService{repo: repo, blobs: blobs, now: time.Now}
}

// Get returns the site settings, or empty settings if none were saved yet.
func (s *SettingsService) Get(ctx context.Context) (domain.SiteSettings, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return domain.SiteSettings{}, nil
	}
	return settings, err
}

// Update guarda la configuración del sitio. Las imágenes enviadas como data
// URI se suben al almacenamiento y se reemplazan por su URL pública.
func (s *SettingsService) Update(ctx context.Context, settings domain.SiteSettings) (domain.SiteSettings, error) {
	if settings.ContactEmail != "" && !strings.Contains(settings.ContactEmail, "@") {
		return domain.SiteSettings{}, invalid("correo de contacto inválido")
	}

	images := []struct {
		key   string
		value *string
	}{
		{"logo", &settings.LogoURL},
		{"hero", &settings.HeroImageURL},
		{"about", &settings.AboutImageURL},
	}
	for _, img := range images {
		url, err := s.storeDataURI(ctx, img.key, *img.value)
		if err != nil {
			return domain.SiteSettings{}, err
		}
		*img.value = url
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return domain.SiteSettings{}, fmt.Errorf("saving settings: %w", err)
	}
	return settings, nil
}

// storeDataURI uploads value when it is a base64 image data URI and returns
// the resulting URL. Any other value is returned unchanged.
func (s *SettingsService) storeDataURI(ctx context.Context, key, value string) (string, error) {
	if !strings.HasPrefix(value, "data:image/") {
		return value, nil
	}

	header, payload, ok := strings.Cut(value, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", invalid("imagen %s: data URI inválido", key)
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", invalid("imagen %s: base64 inválido", key)
	}

	name := fmt.Sprintf("%s_%d.%s", key, s.now().UnixMilli(), imageExtension(contentType))
	url, err := s.blobs.Put(ctx, repository.BucketSiteAssets, name, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return url, nil
}

func imageExtension(contentType string) string {
	ext := strings.TrimPrefix(contentType, "image/")
	switch ext {
	case "jpeg":
		return "jpg"
	case "svg+xml":
		return "svg"
	case "":
		return "png"
	}
	ext = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, ext)
	if ext == "" {
		return "img"
	}
	return ext
}
