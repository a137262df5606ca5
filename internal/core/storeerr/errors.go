// Package storeerr classifies failures coming back from the hosted document
// and object stores. Backends wrap driver errors with one of the sentinels
// below; the original error stays reachable through errors.Is / errors.As.
package storeerr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when the backing service could not be reached
	// (network failure, timeout, service down).
	ErrUnavailable = errors.New("store unavailable")

	// ErrPermissionDenied is returned when the backing service rejected the
	// read or write under its access rules.
	ErrPermissionDenied = errors.New("store permission denied")
)

// Unavailable wraps err as a connectivity failure.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// PermissionDenied wraps err as an access-rule rejection.
func PermissionDenied(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
}

// IsUnavailable reports whether err is a connectivity failure
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsPermissionDenied reports whether err is an access-rule rejection
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
