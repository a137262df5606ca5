package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"Sightings/internal/core/users"
)

type firestoreProfileRepo struct {
	client *firestore.Client
}

// NewProfileRepository creates a Firestore-backed profile statistics repository
func NewProfileRepository(client *firestore.Client) users.ProfileRepository {
	return &firestoreProfileRepo{client: client}
}

func (r *firestoreProfileRepo) GetProfileStats(ctx context.Context, username string) (*users.ProfileStats, error) {
	snap, err := r.client.Collection(usersCollection).Doc(username).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, users.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile stats: %w", classify(err))
	}

	stats := &users.ProfileStats{}
	if err := snap.DataTo(stats); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", username, err)
	}
	stats.Username = username
	return stats, nil
}
