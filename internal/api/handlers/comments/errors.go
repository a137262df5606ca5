package comments

import (
	"net/http"

	"Sightings/internal/api/handlers"
	"Sightings/internal/core/comments"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case comments.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		handlers.WriteStoreError(w, "comment", err)
	}
}
