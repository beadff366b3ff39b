package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"realty-agent/domain"
	"realty-agent/repository"
)

func newTestPropertyService() (*PropertyService, *MockBlobStore) {
	blobs := NewMockBlobStore()
	s := NewPropertyService(repository.NewPropertyRepositoryMemory(), blobs)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s, blobs
}

func TestPropertyService_CreateWithImages(t *testing.T) {
	service, blobs := newTestPropertyService()

	p, err := service.Create(context.Background(), domain.Property{
		Title: "  Casa en la playa ",
		Price: 350000,
	}, []domain.Upload{{Name: "../fachada 1.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Errorf("expected id and creation time, got %+v", p)
	}
	if p.Title != "Casa en la playa" || p.Type != domain.PropertyHouse || p.Status != domain.StatusForSale {
		t.Errorf("unexpected normalized property: %+v", p)
	}
	if len(p.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(p.Images))
	}
	want := "property-images/prop_" + p.ID + "_1700000000000_0_fachada_1.jpg"
	if _, ok := blobs.Objects[want]; !ok {
		t.Errorf("expected object %s, have %v", want, blobs.Objects)
	}
}

func TestPropertyService_SameNamedUploadsKeepBothFiles(t *testing.T) {
	root := t.TempDir()
	s := NewPropertyService(repository.NewPropertyRepositoryMemory(), repository.NewFileBlobStore(root, "/media"))
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	p, err := s.Create(context.Background(), domain.Property{Title: "Casa", Price: 1000}, []domain.Upload{
		{Name: "foto.jpg", ContentType: "image/jpeg", Data: []byte("primera")},
		{Name: "foto.jpg", ContentType: "image/jpeg", Data: []byte("segunda")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Images) != 2 || p.Images[0] == p.Images[1] {
		t.Fatalf("expected two distinct image urls, got %v", p.Images)
	}
	entries, err := os.ReadDir(filepath.Join(root, repository.BucketPropertyImages))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 stored files, got %d", len(entries))
	}
	contents := map[string]bool{}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(root, repository.BucketPropertyImages, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		contents[string(data)] = true
	}
	if !contents["primera"] || !contents["segunda"] {
		t.Errorf("expected both uploads on disk, got %v", contents)
	}
}

func TestPropertyService_UpdateAppendsImages(t *testing.T) {
	service, _ := newTestPropertyService()
	ctx := context.Background()

	created, err := service.Create(ctx, domain.Property{Title: "Depto", Price: 100, Type: domain.PropertyCondo},
		[]domain.Upload{{Name: "a.png", ContentType: "image/png", Data: []byte("a")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := service.Update(ctx, created.ID, domain.Property{Title: "Depto remodelado", Price: 120, Type: domain.PropertyCondo, Status: domain.StatusSold},
		[]domain.Upload{{Name: "b.png", ContentType: "image/png", Data: []byte("b")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Images) != 2 || updated.Images[0] != created.Images[0] {
		t.Errorf("expected existing image kept and new one appended, got %v", updated.Images)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("creation time changed")
	}

	got, err := service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusSold || got.Title != "Depto remodelado" {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestPropertyService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		p       domain.Property
		uploads []domain.Upload
	}{
		{"missing title", domain.Property{Price: 100}, nil},
		{"negative price", domain.Property{Title: "x", Price: -1}, nil},
		{"bad type", domain.Property{Title: "x", Type: "castle"}, nil},
		{"bad status", domain.Property{Title: "x", Status: "rented"}, nil},
		{"not an image", domain.Property{Title: "x"}, []domain.Upload{{Name: "a.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestPropertyService()

			_, err := service.Create(context.Background(), tt.p, tt.uploads)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestPropertyService_ListAndDelete(t *testing.T) {
	service, _ := newTestPropertyService()
	ctx := context.Background()

	for _, title := range []string{"Terreno", "Casa"} {
		typ := domain.PropertyHouse
		if title == "Terreno" {
			typ = domain.PropertyLand
		}
		if _, err := service.Create(ctx, domain.Property{Title: title, Price: 1000, Type: typ}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	land, err := service.List(ctx, domain.PropertyFilter{Type: domain.PropertyLand})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(land) != 1 || land[0].Title != "Terreno" {
		t.Fatalf("unexpected filter result: %+v", land)
	}

	if err := service.Delete(ctx, land[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Get(ctx, land[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if _, err := service.List(ctx, domain.PropertyFilter{MinPrice: 10, MaxPrice: 5}); err == nil {
		t.Errorf("expected error for inverted price range")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"foto.jpg":           "foto.jpg",
		"../../etc/passwd":   "passwd",
		`C:\fotos\sala.png`:  "sala.png",
		"recámara principal": "rec_mara_principal",
		"..":                 "image",
	}
	for in, want := range tests {
		if got := sanitizeFileName(in); got != want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
	if strings.ContainsAny(sanitizeFileName("a/b\\c"), `/\`) {
		t.Errorf("separators must be removed")
	}
}
