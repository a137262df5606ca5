package blobs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MaxImageSize is the largest image accepted for upload (6MB)
const MaxImageSize = 6291456

// ErrObjectNotFound is returned when a stored object does not exist
var ErrObjectNotFound = errors.New("object not found")

// Store defines the object storage operations used by the record store.
// Implementations: internal/blobstore/gcs (Firebase Storage / GCS), internal/blobstore/local.
type Store interface {
	// Put uploads data to path, replacing any existing object
	Put(ctx context.Context, path string, data []byte, contentType string) error

	// URL resolves a publicly fetchable URL for the object at path.
	// Returns ErrObjectNotFound if nothing was uploaded there.
	URL(ctx context.Context, path string) (string, error)

	// Delete removes the object at path
	Delete(ctx context.Context, path string) error
}

// ImagePath returns the object path for a post's image: images/{postID}
func ImagePath(postID string) string {
	return "images/" + postID
}

// ValidateImage normalizes the content type and checks size and MIME type.
// An empty content type is sniffed from the data.
// Returns the normalized content type.
func ValidateImage(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data cannot be empty")
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("image size %d bytes exceeds maximum of %d bytes (6MB)", len(data), MaxImageSize)
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	contentType = normalizeMimeType(contentType)

	if !isValidMimeType(contentType) {
		return "", fmt.Errorf("unsupported MIME type: %s (allowed: image/jpeg, image/png, image/webp, image/gif)", contentType)
	}
	return contentType, nil
}

// normalizeMimeType converts non-standard MIME types to their standard equivalents
// Common case: many clients send image/jpg instead of the standard image/jpeg
func normalizeMimeType(mimeType string) string {
	// drop parameters like "; charset=binary"
	mimeType, _, _ = strings.Cut(mimeType, ";")
	switch strings.TrimSpace(mimeType) {
	case "image/jpg", "image/pjpeg":
		return "image/jpeg"
	default:
		return strings.TrimSpace(mimeType)
	}
}

// isValidMimeType checks if the MIME type is allowed for image uploads
func isValidMimeType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	default:
		return false
	}
}
