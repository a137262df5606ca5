package firestore

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"Sightings/internal/core/storeerr"
)

// classify tags gRPC errors from the Firestore client with the storeerr categories
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return storeerr.Unavailable(err)
	}

	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return storeerr.Unavailable(err)
	case codes.PermissionDenied, codes.Unauthenticated:
		return storeerr.PermissionDenied(err)
	}
	return err
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}
