package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"Sightings/internal/core/users"
)

type mongoProfileRepo struct {
	col *mongo.Collection
}

// NewProfileRepository creates a MongoDB profile statistics repository
func NewProfileRepository(db *mongo.Database) users.ProfileRepository {
	return &mongoProfileRepo{col: db.Collection(usersCollection)}
}

func (r *mongoProfileRepo) GetProfileStats(ctx context.Context, username string) (*users.ProfileStats, error) {
	stats := &users.ProfileStats{}
	err := r.col.FindOne(ctx, bson.M{"_id": username}).Decode(stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, users.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile stats: %w", classify(err))
	}
	return stats, nil
}
