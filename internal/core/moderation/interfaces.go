package moderation

import "context"

// Service defines moderation operations on species_identification metadata
type Service interface {
	// CreateMetadata creates the metadata record for postID
	// Returns ErrMetadataExists if one is already present
	CreateMetadata(ctx context.Context, postID, status string) (*Metadata, error)

	// PinIdentification sets the pinned identification of postID's metadata.
	// Update-only: returns ErrMetadataNotFound when no record exists.
	PinIdentification(ctx context.Context, postID, identificationID string) error

	// SetStatus sets the status label of postID's metadata.
	// Update-only: returns ErrMetadataNotFound when no record exists.
	SetStatus(ctx context.Context, postID, status string) error

	// GetMetadata returns postID's metadata, or nil if none exists
	GetMetadata(ctx context.Context, postID string) (*Metadata, error)
}

// Repository defines the data access interface for moderation metadata
type Repository interface {
	// Create writes a new record keyed by md.PostID
	// Returns ErrMetadataExists if one is already present
	Create(ctx context.Context, md *Metadata) error

	// Get retrieves the record for postID
	// Returns ErrMetadataNotFound if absent
	Get(ctx context.Context, postID string) (*Metadata, error)

	// UpdatePinned updates pinnedspeciesidentification on an existing record
	// Returns ErrMetadataNotFound if absent
	UpdatePinned(ctx context.Context, postID, identificationID string) error

	// UpdateStatus updates status on an existing record
	// Returns ErrMetadataNotFound if absent
	UpdateStatus(ctx context.Context, postID, status string) error
}

// IdentityResolver resolves the user a Session belongs to
type IdentityResolver interface {
	ResolveUsername(ctx context.Context) (string, error)
}

// IdentityFunc adapts a function to IdentityResolver
type IdentityFunc func(ctx context.Context) (string, error)

// ResolveUsername calls f
func (f IdentityFunc) ResolveUsername(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticIdentity always resolves to username
func StaticIdentity(username string) IdentityResolver {
	return IdentityFunc(func(context.Context) (string, error) {
		return username, nil
	})
}
