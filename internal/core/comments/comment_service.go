package comments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// maxCommentGraphemes is the maximum length for comment text in graphemes
const maxCommentGraphemes = 10000

type commentService struct {
	repo Repository
	now  func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(repo Repository) Service {
	return &commentService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateComment creates a comment in postID's comment collection.
// A zero Date is replaced with the current time.
func (s *commentService) CreateComment(ctx context.Context, postID string, req CreateCommentRequest) (*Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, ErrPostIDRequired
	}
	if strings.TrimSpace(req.Author) == "" {
		return nil, ErrAuthorRequired
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrContentEmpty
	}
	if uniseg.GraphemeClusterCount(req.Text) > maxCommentGraphemes {
		return nil, ErrContentTooLong
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}

	comment := &Comment{
		ID:     s.repo.NewID(postID),
		PostID: postID,
		Text:   req.Text,
		Author: req.Author,
		Date:   date.UTC(),
		Rating: req.Rating,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) ListCommentsByPost(ctx context.Context, postID string) (map[string]*Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, ErrPostIDRequired
	}

	list, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	result := make(map[string]*Comment, len(list))
	for _, c := range list {
		result[c.ID] = c
	}
	return result, nil
}
