package posts

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"Sightings/internal/core/blobs"
)

type postService struct {
	repo    Repository
	blobs   blobs.Store
	cleanup bool
}

// Option configures the post service
type Option func(*postService)

// WithOrphanCleanup makes CreatePost delete the uploaded image when the post
// document could not be written afterwards. Off by default: a failed create
// leaves the object in storage.
func WithOrphanCleanup(enabled bool) Option {
	return func(s *postService) {
		s.cleanup = enabled
	}
}

// NewPostService creates a new post service
func NewPostService(repo Repository, blobStore blobs.Store, opts ...Option) Service {
	s := &postService{
		repo:  repo,
		blobs: blobStore,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePost creates a new post
// Flow:
// 1. Validate input
// 2. Allocate the document ID
// 3. Upload the image to images/{id}
// 4. Resolve the public URL of the uploaded image
// 5. Write the post document with the URL in place of the bytes
// The document is written only after steps 3 and 4 succeed.
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	contentType, err := s.validateCreateRequest(req)
	if err != nil {
		return nil, err
	}

	id := s.repo.NewID()
	imagePath := blobs.ImagePath(id)

	if err := s.blobs.Put(ctx, imagePath, req.Image, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	imageURL, err := s.blobs.URL(ctx, imagePath)
	if err != nil {
		s.orphaned(ctx, id, imagePath, err)
		return nil, fmt.Errorf("failed to resolve image URL: %w", err)
	}

	post := &Post{
		ID:          id,
		Author:      req.Author,
		Title:       req.Title,
		Description: req.Description,
		Species:     req.Species,
		ImageURL:    imageURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Rating:      req.Rating,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.orphaned(ctx, id, imagePath, err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// orphaned records an uploaded image that has no post document,
// deleting it when cleanup is enabled
func (s *postService) orphaned(ctx context.Context, postID, imagePath string, cause error) {
	if !s.cleanup {
		slog.Warn("[POST-CREATE] image left without post document",
			"post_id", postID,
			"path", imagePath,
			"error", cause,
		)
		return
	}
	if err := s.blobs.Delete(ctx, imagePath); err != nil {
		slog.Warn("[POST-CREATE] failed to delete orphaned image",
			"post_id", postID,
			"path", imagePath,
			"error", err,
		)
	}
}

// GetPost returns nil, nil when the post does not exist
func (s *postService) GetPost(ctx context.Context, id string) (*Post, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError("id", "post id is required")
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context) (map[string]*Post, error) {
	return s.list(ctx, ListFilter{}, nil)
}

func (s *postService) ListPostsBySpecies(ctx context.Context, species string) (map[string]*Post, error) {
	return s.list(ctx, ListFilter{Species: &species}, nil)
}

func (s *postService) ListPostsByLocation(ctx context.Context, box BoundingBox) (map[string]*Post, error) {
	if err := validateBox(box); err != nil {
		return nil, err
	}
	lon := box.Longitude()
	lat := box.Latitude()
	return s.list(ctx, ListFilter{Longitude: &lon}, &lat)
}

func (s *postService) ListPostsBySpeciesAndLocation(ctx context.Context, species string, box BoundingBox) (map[string]*Post, error) {
	if err := validateBox(box); err != nil {
		return nil, err
	}
	lon := box.Longitude()
	lat := box.Latitude()
	return s.list(ctx, ListFilter{Species: &species, Longitude: &lon}, &lat)
}

// list runs filter against the store, then applies the latitude range over
// the returned candidates when one is given
func (s *postService) list(ctx context.Context, filter ListFilter, latitude *Range) (map[string]*Post, error) {
	candidates, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	result := make(map[string]*Post, len(candidates))
	for _, p := range candidates {
		if latitude != nil && !latitude.Contains(p.Latitude) {
			continue
		}
		result[p.ID] = p
	}
	return result, nil
}

func (s *postService) validateCreateRequest(req CreatePostRequest) (string, error) {
	if strings.TrimSpace(req.Author) == "" {
		return "", NewValidationError("author", "author is required")
	}

	contentType, err := blobs.ValidateImage(req.Image, req.ImageContentType)
	if err != nil {
		return "", NewValidationError("image", err.Error())
	}

	if math.IsNaN(req.Latitude) || req.Latitude < -90 || req.Latitude > 90 {
		return "", NewValidationError("latitude", "latitude must be between -90 and 90")
	}
	if math.IsNaN(req.Longitude) || req.Longitude < -180 || req.Longitude > 180 {
		return "", NewValidationError("longitude", "longitude must be between -180 and 180")
	}

	return contentType, nil
}

func validateBox(box BoundingBox) error {
	for _, v := range []float64{box.LonMax, box.LonMin, box.LatMax, box.LatMin} {
		if math.IsNaN(v) {
			return NewValidationError("location", "bounds must be numbers")
		}
	}
	if box.LonMin > box.LonMax {
		return NewValidationError("location", "lonMin must not exceed lonMax")
	}
	if box.LatMin > box.LatMax {
		return NewValidationError("location", "latMin must not exceed latMax")
	}
	return nil
}
