package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost uploads the image, resolves its URL and writes the post.
	// Flow: Validate -> Allocate ID -> Upload images/{id} -> Resolve URL -> Write document
	// Not idempotent: retrying creates a second post and a second stored object.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetPost returns the post with the given ID, or nil if none exists
	GetPost(ctx context.Context, id string) (*Post, error)

	// ListPosts returns every post keyed by ID
	ListPosts(ctx context.Context) (map[string]*Post, error)

	// ListPostsBySpecies returns posts whose species equals species
	ListPostsBySpecies(ctx context.Context, species string) (map[string]*Post, error)

	// ListPostsByLocation returns posts inside box (bounds inclusive)
	ListPostsByLocation(ctx context.Context, box BoundingBox) (map[string]*Post, error)

	// ListPostsBySpeciesAndLocation returns posts of species inside box
	ListPostsBySpeciesAndLocation(ctx context.Context, species string, box BoundingBox) (map[string]*Post, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// NewID allocates a fresh document identifier without writing anything
	NewID() string

	// Create writes post under post.ID
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by ID
	// Returns ErrPostNotFound if absent
	GetByID(ctx context.Context, id string) (*Post, error)

	// List returns posts matching filter. A zero filter returns every post.
	// Only the species equality and longitude range are evaluated by the store.
	List(ctx context.Context, filter ListFilter) ([]*Post, error)
}
