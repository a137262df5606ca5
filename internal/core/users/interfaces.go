package users

import "context"

// ProfileRepository reads profile statistics
type ProfileRepository interface {
	// GetProfileStats retrieves the statistics record for username
	// Returns ErrProfileNotFound if absent
	GetProfileStats(ctx context.Context, username string) (*ProfileStats, error)
}
