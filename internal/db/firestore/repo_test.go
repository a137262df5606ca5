package firestore

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sightings/internal/core/comments"
	"Sightings/internal/core/moderation"
	"Sightings/internal/core/posts"
	"Sightings/internal/core/users"
)

// setupEmulator connects to the emulator named by FIRESTORE_EMULATOR_HOST,
// using a fresh project ID so tests do not see each other's documents
func setupEmulator(t *testing.T) *firestore.Client {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := NewClient(context.Background(), "test-"+uuid.NewString()[:8], "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPostRepo_Emulator(t *testing.T) {
	client := setupEmulator(t)
	repo := NewPostRepository(client)
	ctx := context.Background()

	post := &posts.Post{ID: repo.NewID(), Author: "alice", Species: "Quercus", ImageURL: "https://x/1", Latitude: 40, Longitude: -73}
	require.NoError(t, repo.Create(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post, got)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, posts.ErrPostNotFound)

	species := "Quercus"
	list, err := repo.List(ctx, posts.ListFilter{Species: &species, Longitude: &posts.Range{Min: -73, Max: -73}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, post.ID, list[0].ID)
}

func TestCommentRepo_Emulator(t *testing.T) {
	client := setupEmulator(t)
	repo := NewCommentRepository(client)
	ctx := context.Background()

	c := &comments.Comment{PostID: "p1", ID: repo.NewID("p1"), Text: "nice", Author: "bob"}
	require.NoError(t, repo.Create(ctx, c))

	list, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p1", list[0].PostID)

	list, err = repo.ListByPost(ctx, "p2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestModerationRepo_Emulator(t *testing.T) {
	client := setupEmulator(t)
	repo := NewModerationRepository(client)
	ctx := context.Background()

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "p1", "open"), moderation.ErrMetadataNotFound)

	require.NoError(t, repo.Create(ctx, &moderation.Metadata{PostID: "p1"}))
	assert.ErrorIs(t, repo.Create(ctx, &moderation.Metadata{PostID: "p1"}), moderation.ErrMetadataExists)
	require.NoError(t, repo.UpdatePinned(ctx, "p1", "ident"))

	md, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "ident", md.PinnedIdentification)
}

func TestProfileRepo_Emulator(t *testing.T) {
	client := setupEmulator(t)
	ctx := context.Background()

	_, err := client.Collection(usersCollection).Doc("mod").Set(ctx, map[string]interface{}{"isModerator": true})
	require.NoError(t, err)

	repo := NewProfileRepository(client)
	stats, err := repo.GetProfileStats(ctx, "mod")
	require.NoError(t, err)
	assert.True(t, stats.IsModerator)
	assert.Equal(t, "mod", stats.Username)

	_, err = repo.GetProfileStats(ctx, "ghost")
	assert.ErrorIs(t, err, users.ErrProfileNotFound)
}
