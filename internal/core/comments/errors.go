package comments

import "errors"

var (
	// ErrContentEmpty indicates comment text is empty
	ErrContentEmpty = errors.New("comment text is required")

	// ErrContentTooLong indicates comment text exceeds 10000 graphemes
	ErrContentTooLong = errors.New("comment text exceeds 10000 graphemes")

	// ErrAuthorRequired indicates the comment has no author
	ErrAuthorRequired = errors.New("comment author is required")

	// ErrPostIDRequired indicates the parent post ID is missing
	ErrPostIDRequired = errors.New("post id is required")
)

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrContentEmpty) ||
		errors.Is(err, ErrContentTooLong) ||
		errors.Is(err, ErrAuthorRequired) ||
		errors.Is(err, ErrPostIDRequired)
}
