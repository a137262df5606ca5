package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"Sightings/internal/core/moderation"
)

type mongoModerationRepo struct {
	col *mongo.Collection
}

// NewModerationRepository creates a MongoDB species_identification repository
func NewModerationRepository(db *mongo.Database) moderation.Repository {
	return &mongoModerationRepo{col: db.Collection(moderationCollection)}
}

func (r *mongoModerationRepo) Create(ctx context.Context, md *moderation.Metadata) error {
	if _, err := r.col.InsertOne(ctx, md); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return moderation.ErrMetadataExists
		}
		return fmt.Errorf("failed to insert metadata: %w", classify(err))
	}
	return nil
}

func (r *mongoModerationRepo) Get(ctx context.Context, postID string) (*moderation.Metadata, error) {
	md := &moderation.Metadata{}
	err := r.col.FindOne(ctx, bson.M{"_id": postID}).Decode(md)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, moderation.ErrMetadataNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", classify(err))
	}
	return md, nil
}

func (r *mongoModerationRepo) UpdatePinned(ctx context.Context, postID, identificationID string) error {
	return r.set(ctx, postID, "pinnedspeciesidentification", identificationID)
}

func (r *mongoModerationRepo) UpdateStatus(ctx context.Context, postID, status string) error {
	return r.set(ctx, postID, "status", status)
}

// set never upserts; an unmatched filter means the record is absent
func (r *mongoModerationRepo) set(ctx context.Context, postID, field, value string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to update metadata: %w", classify(err))
	}
	if res.MatchedCount == 0 {
		return moderation.ErrMetadataNotFound
	}
	return nil
}
