package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Sightings/internal/core/users"
)

type postgresProfileRepo struct {
	db *sql.DB
}

// NewProfileRepository creates a new PostgreSQL profile statistics repository
func NewProfileRepository(db *sql.DB) users.ProfileRepository {
	return &postgresProfileRepo{db: db}
}

// GetProfileStats retrieves the user_profiles row of username
func (r *postgresProfileRepo) GetProfileStats(ctx context.Context, username string) (*users.ProfileStats, error) {
	query := `
		SELECT username, is_moderator, post_count, comment_count, reputation
		FROM user_profiles
		WHERE username = $1`

	stats := &users.ProfileStats{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&stats.Username, &stats.IsModerator, &stats.PostCount, &stats.CommentCount, &stats.Reputation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile stats: %w", classify(err))
	}
	return stats, nil
}
