package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"Sightings/internal/core/comments"
)

type firestoreCommentRepo struct {
	client *firestore.Client
}

// NewCommentRepository creates a Firestore-backed comment repository
func NewCommentRepository(client *firestore.Client) comments.Repository {
	return &firestoreCommentRepo{client: client}
}

// thread returns comments/{postID}/comments. The parent document is never
// created, so the sub-collection exists without a backing post.
func (r *firestoreCommentRepo) thread(postID string) *firestore.CollectionRef {
	return r.client.Collection(commentsCollection).Doc(postID).Collection(commentsCollection)
}

func (r *firestoreCommentRepo) NewID(postID string) string {
	return r.thread(postID).NewDoc().ID
}

func (r *firestoreCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	if _, err := r.thread(comment.PostID).Doc(comment.ID).Set(ctx, comment); err != nil {
		return fmt.Errorf("failed to write comment: %w", classify(err))
	}
	return nil
}

func (r *firestoreCommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	iter := r.thread(postID).Documents(ctx)
	defer iter.Stop()

	var result []*comments.Comment
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", classify(err))
		}

		c := &comments.Comment{}
		if err := snap.DataTo(c); err != nil {
			return nil, fmt.Errorf("failed to decode comment %s: %w", snap.Ref.ID, err)
		}
		c.ID = snap.Ref.ID
		c.PostID = postID
		result = append(result, c)
	}
	return result, nil
}
