package moderation

import (
	"errors"
	"fmt"
)

var (
	// ErrMetadataNotFound is returned when a post has no species_identification record
	ErrMetadataNotFound = errors.New("species identification metadata not found")

	// ErrMetadataExists is returned when creating metadata for a post that already has it
	ErrMetadataExists = errors.New("species identification metadata already exists")

	// ErrNotModerator is returned when a moderator-only action is attempted by someone else
	ErrNotModerator = errors.New("user is not a moderator")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMetadataNotFound)
}
