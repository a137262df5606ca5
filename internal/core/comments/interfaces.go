package comments

import "context"

// Service defines the business logic interface for comments
type Service interface {
	// CreateComment writes a new comment under postID.
	// The parent post is not checked for existence.
	CreateComment(ctx context.Context, postID string, req CreateCommentRequest) (*Comment, error)

	// ListCommentsByPost returns every comment of postID keyed by comment ID
	ListCommentsByPost(ctx context.Context, postID string) (map[string]*Comment, error)
}

// Repository defines the data access interface for comments
type Repository interface {
	// NewID allocates a fresh identifier in postID's comment collection
	NewID(postID string) string

	// Create writes comment under comment.PostID / comment.ID
	Create(ctx context.Context, comment *Comment) error

	// ListByPost returns all comments in postID's comment collection
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
}
