// Package local stores images on disk and serves them over HTTP.
// Intended for development and single-node deployments.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"Sightings/internal/core/blobs"
)

// Store implements blobs.Store under a root directory
type Store struct {
	root    string
	baseURL string
}

var _ blobs.Store = (*Store)(nil)

// NewStore creates the root directory if needed. Object URLs are baseURL + "/" + path.
func NewStore(root, baseURL string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// resolve maps an object path to a file under root, rejecting escapes
func (s *Store) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if path == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to create object dir: %w", err)
	}

	// write then rename so readers never see a partial file
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object %s: %w", path, err)
	}
	if err := os.Rename(tmp, file); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to commit object %s: %w", path, err)
	}
	return nil
}

func (s *Store) URL(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	file, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", blobs.ErrObjectNotFound
		}
		return "", fmt.Errorf("failed to stat object %s: %w", path, err)
	}
	return s.baseURL + "/" + filepath.ToSlash(path), nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return blobs.ErrObjectNotFound
		}
		return fmt.Errorf("failed to delete object %s: %w", path, err)
	}
	return nil
}

// Handler serves stored objects by request path, so /images/{id} maps to
// root/images/{id}. Mount it at /images/* on the router serving baseURL.
func (s *Store) Handler() http.Handler {
	return http.FileServer(http.Dir(s.root))
}
