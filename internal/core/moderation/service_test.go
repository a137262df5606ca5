package moderation_test

import (
	"context"
	"testing"

	"Sightings/internal/core/moderation"
	"Sightings/internal/db/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinIdentification_MissingMetadataFails(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Moderation()
	service := moderation.NewModerationService(repo)

	err := service.PinIdentification(ctx, "p1", "ident-7")
	assert.ErrorIs(t, err, moderation.ErrMetadataNotFound)
	assert.True(t, moderation.IsNotFound(err))

	md, err := service.GetMetadata(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, md, "pin must not create the record")
}

func TestSetStatus_MissingMetadataFails(t *testing.T) {
	service := moderation.NewModerationService(memory.NewStore().Moderation())
	err := service.SetStatus(context.Background(), "p1", "resolved")
	assert.ErrorIs(t, err, moderation.ErrMetadataNotFound)
}

func TestMetadataLifecycle(t *testing.T) {
	ctx := context.Background()
	service := moderation.NewModerationService(memory.NewStore().Moderation())

	created, err := service.CreateMetadata(ctx, "p1", "open")
	require.NoError(t, err)
	assert.Equal(t, "p1", created.PostID)

	_, err = service.CreateMetadata(ctx, "p1", "open")
	assert.ErrorIs(t, err, moderation.ErrMetadataExists)

	require.NoError(t, service.PinIdentification(ctx, "p1", "ident-7"))
	// any label is accepted, there is no transition table
	require.NoError(t, service.SetStatus(ctx, "p1", "whatever-the-caller-wants"))

	md, err := service.GetMetadata(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, md)
	assert.Equal(t, "ident-7", md.PinnedIdentification)
	assert.Equal(t, "whatever-the-caller-wants", md.Status)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	service := moderation.NewModerationService(memory.NewStore().Moderation())

	assert.True(t, moderation.IsValidationError(service.PinIdentification(ctx, "", "x")))
	assert.True(t, moderation.IsValidationError(service.PinIdentification(ctx, "p1", "")))
	assert.True(t, moderation.IsValidationError(service.SetStatus(ctx, " ", "x")))

	_, err := service.GetMetadata(ctx, "")
	assert.True(t, moderation.IsValidationError(err))
}
