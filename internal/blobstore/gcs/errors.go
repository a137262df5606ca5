package gcs

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"

	"Sightings/internal/core/storeerr"
)

// classify tags Cloud Storage API errors with the storeerr categories
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return storeerr.Unavailable(err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return storeerr.PermissionDenied(err)
		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
			return storeerr.Unavailable(err)
		}
	}
	return err
}
