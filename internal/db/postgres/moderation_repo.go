package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Sightings/internal/core/moderation"
)

type postgresModerationRepo struct {
	db *sql.DB
}

// NewModerationRepository creates a new PostgreSQL species_identification repository
func NewModerationRepository(db *sql.DB) moderation.Repository {
	return &postgresModerationRepo{db: db}
}

func (r *postgresModerationRepo) Create(ctx context.Context, md *moderation.Metadata) error {
	query := `
		INSERT INTO species_identification (post_id, pinnedspeciesidentification, status)
		VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, md.PostID, md.PinnedIdentification, md.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return moderation.ErrMetadataExists
		}
		return fmt.Errorf("failed to insert metadata: %w", classify(err))
	}
	return nil
}

func (r *postgresModerationRepo) Get(ctx context.Context, postID string) (*moderation.Metadata, error) {
	query := `
		SELECT post_id, pinnedspeciesidentification, status
		FROM species_identification
		WHERE post_id = $1`

	md := &moderation.Metadata{}
	err := r.db.QueryRowContext(ctx, query, postID).Scan(&md.PostID, &md.PinnedIdentification, &md.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, moderation.ErrMetadataNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", classify(err))
	}
	return md, nil
}

func (r *postgresModerationRepo) UpdatePinned(ctx context.Context, postID, identificationID string) error {
	return r.update(ctx,
		`UPDATE species_identification SET pinnedspeciesidentification = $2 WHERE post_id = $1`,
		postID, identificationID)
}

func (r *postgresModerationRepo) UpdateStatus(ctx context.Context, postID, status string) error {
	return r.update(ctx,
		`UPDATE species_identification SET status = $2 WHERE post_id = $1`,
		postID, status)
}

// update runs a single-row UPDATE; zero affected rows means the record is absent
func (r *postgresModerationRepo) update(ctx context.Context, query, postID, value string) error {
	result, err := r.db.ExecContext(ctx, query, postID, value)
	if err != nil {
		return fmt.Errorf("failed to update metadata: %w", classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return moderation.ErrMetadataNotFound
	}
	return nil
}
