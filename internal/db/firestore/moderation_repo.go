package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"Sightings/internal/core/moderation"
)

type firestoreModerationRepo struct {
	client *firestore.Client
}

// NewModerationRepository creates a Firestore-backed species_identification repository
func NewModerationRepository(client *firestore.Client) moderation.Repository {
	return &firestoreModerationRepo{client: client}
}

func (r *firestoreModerationRepo) doc(postID string) *firestore.DocumentRef {
	return r.client.Collection(moderationCollection).Doc(postID)
}

func (r *firestoreModerationRepo) Create(ctx context.Context, md *moderation.Metadata) error {
	if _, err := r.doc(md.PostID).Create(ctx, md); err != nil {
		if isAlreadyExists(err) {
			return moderation.ErrMetadataExists
		}
		return fmt.Errorf("failed to create metadata: %w", classify(err))
	}
	return nil
}

func (r *firestoreModerationRepo) Get(ctx context.Context, postID string) (*moderation.Metadata, error) {
	snap, err := r.doc(postID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, moderation.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("failed to get metadata: %w", classify(err))
	}

	md := &moderation.Metadata{}
	if err := snap.DataTo(md); err != nil {
		return nil, fmt.Errorf("failed to decode metadata %s: %w", postID, err)
	}
	md.PostID = postID
	return md, nil
}

func (r *firestoreModerationRepo) UpdatePinned(ctx context.Context, postID, identificationID string) error {
	return r.update(ctx, postID, firestore.Update{Path: "pinnedspeciesidentification", Value: identificationID})
}

func (r *firestoreModerationRepo) UpdateStatus(ctx context.Context, postID, status string) error {
	return r.update(ctx, postID, firestore.Update{Path: "status", Value: status})
}

// update relies on DocumentRef.Update failing with NotFound on a missing document
func (r *firestoreModerationRepo) update(ctx context.Context, postID string, u firestore.Update) error {
	if _, err := r.doc(postID).Update(ctx, []firestore.Update{u}); err != nil {
		if isNotFound(err) {
			return moderation.ErrMetadataNotFound
		}
		return fmt.Errorf("failed to update metadata: %w", classify(err))
	}
	return nil
}
