package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"Sightings/internal/core/posts"
)

type firestorePostRepo struct {
	client *firestore.Client
}

// NewPostRepository creates a Firestore-backed post repository
func NewPostRepository(client *firestore.Client) posts.Repository {
	return &firestorePostRepo{client: client}
}

// NewID returns a Firestore auto-id; no document is written
func (r *firestorePostRepo) NewID() string {
	return r.client.Collection(postsCollection).NewDoc().ID
}

func (r *firestorePostRepo) Create(ctx context.Context, post *posts.Post) error {
	if _, err := r.client.Collection(postsCollection).Doc(post.ID).Set(ctx, post); err != nil {
		return fmt.Errorf("failed to write post: %w", classify(err))
	}
	return nil
}

func (r *firestorePostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	snap, err := r.client.Collection(postsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, posts.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", classify(err))
	}
	return decodePost(snap)
}

// List pushes the species equality and the longitude range down to Firestore.
// Firestore allows range filters on a single field per query, so latitude is
// left to the caller.
func (r *firestorePostRepo) List(ctx context.Context, filter posts.ListFilter) ([]*posts.Post, error) {
	q := r.client.Collection(postsCollection).Query
	if filter.Species != nil {
		q = q.Where("species", "==", *filter.Species)
	}
	if filter.Longitude != nil {
		q = q.Where("longitude", "<=", filter.Longitude.Max).
			Where("longitude", ">=", filter.Longitude.Min)
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", classify(err))
	}

	result := make([]*posts.Post, 0, len(snaps))
	for _, snap := range snaps {
		post, err := decodePost(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, nil
}

func decodePost(snap *firestore.DocumentSnapshot) (*posts.Post, error) {
	post := &posts.Post{}
	if err := snap.DataTo(post); err != nil {
		return nil, fmt.Errorf("failed to decode post %s: %w", snap.Ref.ID, err)
	}
	post.ID = snap.Ref.ID
	return post, nil
}
