package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// minJWKSRefresh bounds how often the key set is refetched
const minJWKSRefresh = 15 * time.Minute

// JWKSVerifier verifies asymmetric tokens (RS256, ES256, ...) against the
// identity provider's published key set, kept in an auto-refreshing cache
type JWKSVerifier struct {
	keys     jwk.Set
	issuer   string
	audience string
}

// NewJWKSVerifier registers jwksURL in a cache bound to ctx and fetches it once,
// so a bad URL fails at startup rather than on the first request
func NewJWKSVerifier(ctx context.Context, jwksURL, issuer, audience string) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("jwks url is required")
	}

	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(minJWKSRefresh)); err != nil {
		return nil, fmt.Errorf("failed to register jwks url: %w", err)
	}
	if _, err := cache.Refresh(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("failed to fetch jwks: %w", err)
	}

	return &JWKSVerifier{
		keys:     jwk.NewCachedSet(cache, jwksURL),
		issuer:   issuer,
		audience: audience,
	}, nil
}

func (v *JWKSVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	opts := []jwt.ParseOption{
		jwt.WithKeySet(v.keys, jws.WithInferAlgorithmFromKey(true)),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(30 * time.Second),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	parsed, err := jwt.Parse([]byte(token), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if parsed.Subject() == "" {
		return nil, ErrMissingSubject
	}
	return &Claims{Username: parsed.Subject(), Issuer: parsed.Issuer()}, nil
}
