package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	BucketPropertyImages = "property-images"
	BucketSiteAssets     = "site-assets"
)

// BlobStore saves uploaded files and returns the URL they are served from.
// Put overwrites an existing object of the same name.
type BlobStore interface {
	Put(ctx context.Context, bucket, name, contentType string, r io.Reader) (string, error)
}

// FileBlobStore writes objects to <root>/<bucket>/<name> and serves them
// from <baseURL>/<bucket>/<name>.
type FileBlobStore struct {
	root    string
	baseURL string
}

func NewFileBlobStore(root, baseURL string) *FileBlobStore {
	return &FileBlobStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Root is the directory objects are written under.
func (s *FileBlobStore) Root() string { return s.root }

func (s *FileBlobStore) Put(ctx context.Context, bucket, name, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !validObjectName(bucket) || !validObjectName(name) {
		return "", fmt.Errorf("nombre de archivo inválido: %s/%s", bucket, name)
	}

	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating bucket %s: %w", bucket, err)
	}

	// Escritura atómica: archivo temporal y rename.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return s.baseURL + "/" + bucket + "/" + name, nil
}

func validObjectName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.HasPrefix(name, ".")
}
