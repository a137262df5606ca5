package moderation

import (
	"context"
	"fmt"
	"strings"
)

type moderationService struct {
	repo Repository
}

// NewModerationService creates a new moderation service
func NewModerationService(repo Repository) Service {
	return &moderationService{repo: repo}
}

func (s *moderationService) CreateMetadata(ctx context.Context, postID, status string) (*Metadata, error) {
	if err := requirePostID(postID); err != nil {
		return nil, err
	}

	md := &Metadata{
		PostID: postID,
		Status: status,
	}
	if err := s.repo.Create(ctx, md); err != nil {
		return nil, fmt.Errorf("failed to create metadata: %w", err)
	}
	return md, nil
}

func (s *moderationService) PinIdentification(ctx context.Context, postID, identificationID string) error {
	if err := requirePostID(postID); err != nil {
		return err
	}
	if strings.TrimSpace(identificationID) == "" {
		return &ValidationError{Field: "identificationId", Message: "identification id is required"}
	}

	if err := s.repo.UpdatePinned(ctx, postID, identificationID); err != nil {
		return fmt.Errorf("failed to pin identification: %w", err)
	}
	return nil
}

func (s *moderationService) SetStatus(ctx context.Context, postID, status string) error {
	if err := requirePostID(postID); err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, postID, status); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	return nil
}

// GetMetadata returns nil, nil when the post has no metadata record
func (s *moderationService) GetMetadata(ctx context.Context, postID string) (*Metadata, error) {
	if err := requirePostID(postID); err != nil {
		return nil, err
	}

	md, err := s.repo.Get(ctx, postID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	return md, nil
}

func requirePostID(postID string) error {
	if strings.TrimSpace(postID) == "" {
		return &ValidationError{Field: "postId", Message: "post id is required"}
	}
	return nil
}
