package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"Sightings/internal/core/users"
)

// Session memoizes one user's profile statistics so the moderator flag is
// fetched at most once until Invalidate is called. Role changes made
// elsewhere are not observed before then.
//
// Two first calls racing on an empty cache may both fetch; the last one wins.
// The lock only guards the cached pointer and is never held across a fetch.
type Session struct {
	identity IdentityResolver
	profiles users.ProfileRepository
	logger   *slog.Logger

	mu      sync.RWMutex
	profile *users.ProfileStats
}

// NewSession creates a session for the user identity resolves to
func NewSession(identity IdentityResolver, profiles users.ProfileRepository, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		identity: identity,
		profiles: profiles,
		logger:   logger,
	}
}

// IsModerator reports whether the session's user is a moderator.
// The first call resolves the identity and fetches the profile; later calls
// use the cached profile. A missing profile means "not a moderator" and is
// cached like any other answer.
func (s *Session) IsModerator(ctx context.Context) (bool, error) {
	s.mu.RLock()
	cached := s.profile
	s.mu.RUnlock()
	if cached != nil {
		return cached.IsModerator, nil
	}

	username, err := s.identity.ResolveUsername(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to resolve username: %w", err)
	}

	profile, err := s.profiles.GetProfileStats(ctx, username)
	if err != nil {
		if !errors.Is(err, users.ErrProfileNotFound) {
			return false, fmt.Errorf("failed to get profile stats: %w", err)
		}
		profile = &users.ProfileStats{Username: username}
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	s.logger.Debug("moderator flag cached",
		"user", username,
		"is_moderator", profile.IsModerator)

	return profile.IsModerator, nil
}

// Invalidate drops the cached profile; the next IsModerator call fetches again
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
}

// Sessions keeps one Session per username for multi-user callers such as the HTTP API
type Sessions struct {
	profiles users.ProfileRepository
	logger   *slog.Logger

	mu     sync.Mutex
	byUser map[string]*Session
}

// NewSessions creates an empty session registry
func NewSessions(profiles users.ProfileRepository, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		profiles: profiles,
		logger:   logger,
		byUser:   make(map[string]*Session),
	}
}

// For returns the session of username, creating it on first use
func (r *Sessions) For(username string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byUser[username]
	if !ok {
		s = NewSession(StaticIdentity(username), r.profiles, r.logger)
		r.byUser[username] = s
	}
	return s
}

// Invalidate drops the cached profile of username, if any
func (r *Sessions) Invalidate(username string) {
	r.mu.Lock()
	s, ok := r.byUser[username]
	r.mu.Unlock()

	if ok {
		s.Invalidate()
	}
}
