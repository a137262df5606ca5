package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"Sightings/internal/core/posts"
)

type mongoPostRepo struct {
	col *mongo.Collection
}

// NewPostRepository creates a MongoDB post repository
func NewPostRepository(db *mongo.Database) posts.Repository {
	return &mongoPostRepo{col: db.Collection(postsCollection)}
}

func (r *mongoPostRepo) NewID() string {
	return uuid.NewString()
}

func (r *mongoPostRepo) Create(ctx context.Context, post *posts.Post) error {
	if _, err := r.col.InsertOne(ctx, post); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("post already exists: %s", post.ID)
		}
		return fmt.Errorf("failed to insert post: %w", classify(err))
	}
	return nil
}

func (r *mongoPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	post := &posts.Post{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", classify(err))
	}
	return post, nil
}

// List matches species and inclusive longitude bounds; latitude is left to the caller
func (r *mongoPostRepo) List(ctx context.Context, filter posts.ListFilter) ([]*posts.Post, error) {
	query := bson.M{}
	if filter.Species != nil {
		query["species"] = *filter.Species
	}
	if filter.Longitude != nil {
		query["longitude"] = bson.M{"$gte": filter.Longitude.Min, "$lte": filter.Longitude.Max}
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", classify(err))
	}

	var result []*posts.Post
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", classify(err))
	}
	return result, nil
}
