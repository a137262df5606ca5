// Package firestore implements the document-store repositories on Cloud Firestore.
//
// Layout:
//
//	posts/{postId}
//	comments/{postId}/comments/{commentId}
//	species_identification/{postId}
//	users/{username}
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

const (
	postsCollection      = "posts"
	commentsCollection   = "comments"
	moderationCollection = "species_identification"
	usersCollection      = "users"
)

// NewClient opens a Firestore client for projectID.
// An empty credentialsFile falls back to application default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", classify(err))
	}
	return client, nil
}
