package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"Sightings/internal/core/comments"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// NewID allocates a comment ID; IDs are unique per post
func (r *postgresCommentRepo) NewID(postID string) string {
	return uuid.NewString()
}

// Create inserts a new comment scoped to comment.PostID.
// There is no foreign key on post_id, so comments under unknown posts are accepted.
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (post_id, id, date, text, author, rating)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		comment.PostID, comment.ID, comment.Date, comment.Text, comment.Author, comment.Rating)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("comment already exists: %s/%s", comment.PostID, comment.ID)
		}
		return fmt.Errorf("failed to insert comment: %w", classify(err))
	}
	return nil
}

// ListByPost returns every comment of postID, oldest first
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	query := `
		SELECT post_id, id, date, text, author, rating
		FROM comments
		WHERE post_id = $1
		ORDER BY date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", classify(err))
	}
	defer rows.Close()

	var result []*comments.Comment
	for rows.Next() {
		c := &comments.Comment{}
		if err := rows.Scan(&c.PostID, &c.ID, &c.Date, &c.Text, &c.Author, &c.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", classify(err))
		}
		c.Date = c.Date.UTC()
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", classify(err))
	}
	return result, nil
}
