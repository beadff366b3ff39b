package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"realty-agent/domain"
	"realty-agent/repository"
)

func TestSettingsService_UploadsDataURI(t *testing.T) {
	blobs := NewMockBlobStore()
	service := NewSettingsService(repository.NewSettingsRepositoryMemory(), blobs)
	service.now = func() time.Time { return time.UnixMilli(1700000000000) }

	logo := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	saved, err := service.Update(context.Background(), domain.SiteSettings{
		LogoURL:      logo,
		HeroImageURL: "https://example.com/hero.jpg",
		AboutText:    "Somos una agencia",
		ContactEmail: "hola@example.com",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.LogoURL != "https://cdn.test/site-assets/logo_1700000000000.png" {
		t.Errorf("unexpected logo url: %s", saved.LogoURL)
	}
	if string(blobs.Objects["site-assets/logo_1700000000000.png"]) != "png-bytes" {
		t.Errorf("logo bytes not stored")
	}
	if blobs.Types["site-assets/logo_1700000000000.png"] != "image/png" {
		t.Errorf("unexpected content type %q", blobs.Types["site-assets/logo_1700000000000.png"])
	}
	if saved.HeroImageURL != "https://example.com/hero.jpg" {
		t.Errorf("plain URLs must be kept, got %s", saved.HeroImageURL)
	}

	got, err := service.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != saved {
		t.Errorf("expected stored settings %+v, got %+v", saved, got)
	}
}

func TestSettingsService_RejectsBadDataURI(t *testing.T) {
	service := NewSettingsService(repository.NewSettingsRepositoryMemory(), NewMockBlobStore())

	_, err := service.Update(context.Background(), domain.SiteSettings{
		AboutImageURL: "data:image/jpeg;base64,!!!",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestImageExtension(t *testing.T) {
	tests := map[string]string{
		"image/jpeg":    "jpg",
		"image/png":     "png",
		"image/svg+xml": "svg",
		"image/webp":    "webp",
		"image/":        "png",
	}
	for in, want := range tests {
		if got := imageExtension(in); got != want {
			t.Errorf("imageExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSettingsService_GetBeforeSave(t *testing.T) {
	service := NewSettingsService(repository.NewSettingsRepositoryMemory(), NewMockBlobStore())

	got, err := service.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (domain.SiteSettings{}) {
		t.Errorf("expected empty settings, got %+v", got)
	}
}
