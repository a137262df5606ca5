package users

import "errors"

// ErrProfileNotFound is returned when a user has no profile statistics record
var ErrProfileNotFound = errors.New("profile not found")
