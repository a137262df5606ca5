package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sightings/internal/core/comments"
)

type mongoCommentRepo struct {
	col *mongo.Collection
}

// NewCommentRepository creates a MongoDB comment repository.
// All comments share one collection partitioned by post_id.
func NewCommentRepository(db *mongo.Database) comments.Repository {
	return &mongoCommentRepo{col: db.Collection(commentsCollection)}
}

func (r *mongoCommentRepo) NewID(postID string) string {
	return uuid.NewString()
}

func (r *mongoCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	if _, err := r.col.InsertOne(ctx, comment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("comment already exists: %s/%s", comment.PostID, comment.ID)
		}
		return fmt.Errorf("failed to insert comment: %w", classify(err))
	}
	return nil
}

func (r *mongoCommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", classify(err))
	}

	var result []*comments.Comment
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", classify(err))
	}
	for _, c := range result {
		c.Date = c.Date.UTC()
	}
	return result, nil
}
