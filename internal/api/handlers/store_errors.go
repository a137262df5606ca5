package handlers

import (
	"log/slog"
	"net/http"

	"Sightings/internal/core/storeerr"
)

// WriteStoreError maps storeerr categories and falls back to a 500 that
// does not leak internal details. scope names the handler in the log line.
func WriteStoreError(w http.ResponseWriter, scope string, err error) {
	switch {
	case storeerr.IsUnavailable(err):
		slog.Warn("document store unavailable", "scope", scope, "error", err)
		WriteError(w, http.StatusServiceUnavailable, "Unavailable",
			"The data store is temporarily unavailable")

	case storeerr.IsPermissionDenied(err):
		slog.Warn("document store denied access", "scope", scope, "error", err)
		WriteError(w, http.StatusForbidden, "PermissionDenied",
			"Access to the data store was denied")

	default:
		slog.Error("unexpected error", "scope", scope, "error", err)
		WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
