// Package gcs stores images in a Cloud Storage bucket, which is also what
// backs Firebase Storage
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"Sightings/internal/core/blobs"
)

// URLMode selects how public URLs are built
type URLMode string

const (
	// URLModeFirebase builds Firebase download URLs authorized by a token kept in object metadata
	URLModeFirebase URLMode = "firebase"
	// URLModePublic builds storage.googleapis.com URLs; the bucket must allow public reads
	URLModePublic URLMode = "public"

	downloadTokensKey = "firebaseStorageDownloadTokens"
)

// Store implements blobs.Store on a GCS bucket
type Store struct {
	client *storage.Client
	bucket string
	mode   URLMode
}

// NewClient opens a storage client. An empty credentialsFile falls back to
// application default credentials.
func NewClient(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", classify(err))
	}
	return client, nil
}

// NewStore creates a store on bucket
func NewStore(client *storage.Client, bucket string, mode URLMode) *Store {
	if mode == "" {
		mode = URLModeFirebase
	}
	return &Store{client: client, bucket: bucket, mode: mode}
}

var _ blobs.Store = (*Store)(nil)

// Put uploads data and, in firebase mode, attaches a fresh download token
func (s *Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if s.mode == URLModeFirebase {
		w.Metadata = map[string]string{downloadTokensKey: uuid.NewString()}
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object %s: %w", path, classify(err))
	}
	// the upload is committed on Close
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to upload object %s: %w", path, classify(err))
	}
	return nil
}

// URL reads the object's attributes so a URL is only returned for objects that exist
func (s *Store) URL(ctx context.Context, path string) (string, error) {
	attrs, err := s.client.Bucket(s.bucket).Object(path).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", blobs.ErrObjectNotFound
		}
		return "", fmt.Errorf("failed to read object attributes %s: %w", path, classify(err))
	}

	if s.mode == URLModePublic {
		return publicURL(s.bucket, path), nil
	}

	token := attrs.Metadata[downloadTokensKey]
	if token == "" {
		return "", fmt.Errorf("object %s has no download token", path)
	}
	return firebaseURL(s.bucket, path, token), nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	if err := s.client.Bucket(s.bucket).Object(path).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return blobs.ErrObjectNotFound
		}
		return fmt.Errorf("failed to delete object %s: %w", path, classify(err))
	}
	return nil
}

// firebaseURL matches what the Firebase SDKs return from getDownloadURL.
// A token may hold several comma-separated values; any of them works.
func firebaseURL(bucket, path, token string) string {
	first, _, _ := strings.Cut(token, ",")
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(path), url.QueryEscape(first))
}

func publicURL(bucket, path string) string {
	return (&url.URL{
		Scheme: "https",
		Host:   "storage.googleapis.com",
		Path:   "/" + bucket + "/" + path,
	}).String()
}
