package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"Sightings/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// NewID allocates a post ID without touching the database
func (r *postgresPostRepo) NewID() string {
	return uuid.NewString()
}

// Create inserts a new post into the posts table
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (
			id, author, title, description, species,
			image, latitude, longitude, rating
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)`

	_, err := r.db.ExecContext(
		ctx, query,
		post.ID, post.Author, post.Title, post.Description, post.Species,
		post.ImageURL, post.Latitude, post.Longitude, post.Rating,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("post already exists: %s", post.ID)
		}
		return fmt.Errorf("failed to insert post: %w", classify(err))
	}
	return nil
}

// GetByID retrieves a post by its ID
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	query := `
		SELECT id, author, title, description, species, image, latitude, longitude, rating
		FROM posts
		WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", classify(err))
	}
	return post, nil
}

// List returns posts matching the species and longitude parts of filter
func (r *postgresPostRepo) List(ctx context.Context, filter posts.ListFilter) ([]*posts.Post, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Species != nil {
		args = append(args, *filter.Species)
		conditions = append(conditions, fmt.Sprintf("species = $%d", len(args)))
	}
	if filter.Longitude != nil {
		args = append(args, filter.Longitude.Min, filter.Longitude.Max)
		conditions = append(conditions, fmt.Sprintf("longitude BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	query := `SELECT id, author, title, description, species, image, latitude, longitude, rating FROM posts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", classify(err))
	}
	defer rows.Close()

	var result []*posts.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", classify(err))
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", classify(err))
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	post := &posts.Post{}
	err := row.Scan(
		&post.ID, &post.Author, &post.Title, &post.Description, &post.Species,
		&post.ImageURL, &post.Latitude, &post.Longitude, &post.Rating,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}
