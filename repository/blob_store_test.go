package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileBlobStore_Put(t *testing.T) {
	root := t.TempDir()
	store := NewFileBlobStore(root, "http://localhost:8080/media/")

	url, err := store.Put(context.Background(), BucketSiteAssets, "logo_1700000000000.png", "image/png",
		strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "http://localhost:8080/media/site-assets/logo_1700000000000.png" {
		t.Errorf("unexpected url %s", url)
	}

	data, err := os.ReadFile(filepath.Join(root, BucketSiteAssets, "logo_1700000000000.png"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestFileBlobStore_RejectsTraversal(t *testing.T) {
	store := NewFileBlobStore(t.TempDir(), "http://localhost/media")

	for _, name := range []string{"../escape.png", "..", "a/b.png", ".hidden"} {
		if _, err := store.Put(context.Background(), BucketPropertyImages, name, "image/png", strings.NewReader("x")); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}
