// Package auth verifies bearer tokens issued by the identity provider and
// extracts the caller's username from the sub claim
package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidToken is returned for tokens that fail parsing, signature or claim checks
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSubject is returned for otherwise valid tokens without a sub claim
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims are the verified claims the API layer cares about
type Claims struct {
	Username string
	Issuer   string
}

// Verifier checks a bearer token and returns its claims
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// StripBearer removes a leading "Bearer " from an Authorization header value.
// ok is false when the prefix is missing.
func StripBearer(header string) (token string, ok bool) {
	token, ok = strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(token), true
}
