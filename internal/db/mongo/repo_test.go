package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"Sightings/internal/core/comments"
	"Sightings/internal/core/moderation"
	"Sightings/internal/core/posts"
	"Sightings/internal/core/users"
)

// setupTestDB connects to TEST_MONGO_URI and returns a throwaway database
func setupTestDB(t *testing.T) *mongo.Database {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	client, db, err := Connect(context.Background(), uri, "sightings_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestPostRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	oak := &posts.Post{ID: repo.NewID(), Author: "alice", Species: "Quercus", ImageURL: "https://x/1", Latitude: 40, Longitude: -73}
	pine := &posts.Post{ID: repo.NewID(), Author: "bob", Species: "Pinus", ImageURL: "https://x/2", Latitude: 10, Longitude: 20}
	require.NoError(t, repo.Create(ctx, oak))
	require.NoError(t, repo.Create(ctx, pine))

	got, err := repo.GetByID(ctx, oak.ID)
	require.NoError(t, err)
	assert.Equal(t, oak, got)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, posts.ErrPostNotFound)

	list, err := repo.List(ctx, posts.ListFilter{Longitude: &posts.Range{Min: -73, Max: 0}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, oak.ID, list[0].ID)
}

func TestCommentRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &comments.Comment{PostID: "p1", ID: repo.NewID("p1"), Text: "a", Author: "x"}))
	require.NoError(t, repo.Create(ctx, &comments.Comment{PostID: "p2", ID: repo.NewID("p2"), Text: "b", Author: "x"}))

	list, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Text)
}

func TestModerationRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModerationRepository(db)
	ctx := context.Background()

	assert.ErrorIs(t, repo.UpdatePinned(ctx, "p1", "ident"), moderation.ErrMetadataNotFound)

	require.NoError(t, repo.Create(ctx, &moderation.Metadata{PostID: "p1"}))
	assert.ErrorIs(t, repo.Create(ctx, &moderation.Metadata{PostID: "p1"}), moderation.ErrMetadataExists)
	require.NoError(t, repo.UpdateStatus(ctx, "p1", "resolved"))

	md, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "resolved", md.Status)

	count, err := db.Collection(moderationCollection).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProfileRepo(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Collection(usersCollection).InsertOne(ctx, users.ProfileStats{Username: "mod", IsModerator: true})
	require.NoError(t, err)

	repo := NewProfileRepository(db)
	stats, err := repo.GetProfileStats(ctx, "mod")
	require.NoError(t, err)
	assert.True(t, stats.IsModerator)

	_, err = repo.GetProfileStats(ctx, "ghost")
	assert.ErrorIs(t, err, users.ErrProfileNotFound)
}
