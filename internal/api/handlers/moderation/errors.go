package moderation

import (
	"errors"
	"net/http"

	"Sightings/internal/api/handlers"
	"Sightings/internal/core/moderation"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case moderation.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case moderation.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "MetadataNotFound",
			"No species identification record exists for this post")

	case errors.Is(err, moderation.ErrMetadataExists):
		handlers.WriteError(w, http.StatusConflict, "MetadataExists",
			"A species identification record already exists for this post")

	case errors.Is(err, moderation.ErrNotModerator):
		handlers.WriteError(w, http.StatusForbidden, "NotModerator",
			"Only moderators can change species identification records")

	default:
		handlers.WriteStoreError(w, "moderation", err)
	}
}
