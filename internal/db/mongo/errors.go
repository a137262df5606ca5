package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"Sightings/internal/core/storeerr"
)

const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
)

// classify tags driver errors with the storeerr categories
func classify(err error) error {
	if err == nil {
		return nil
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return storeerr.Unavailable(err)
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) &&
		(serverErr.HasErrorCode(codeUnauthorized) || serverErr.HasErrorCode(codeAuthenticationFailed)) {
		return storeerr.PermissionDenied(err)
	}
	return err
}
