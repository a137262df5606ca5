package comments

import (
	"time"
)

// Comment represents a comment stored under its post's comment collection.
// PostID is the containment path (comments/{postId}/comments), not a field of
// the stored record; backends without sub-collections keep it as a partition key.
type Comment struct {
	Date   time.Time `json:"date" firestore:"date" bson:"date"`
	ID     string    `json:"id" firestore:"-" bson:"_id"`
	PostID string    `json:"postId" firestore:"-" bson:"post_id"`
	Text   string    `json:"text" firestore:"text" bson:"text"`
	Author string    `json:"author" firestore:"author" bson:"author"`
	Rating int       `json:"rating" firestore:"rating" bson:"rating"`
}

// IsPersisted reports whether the store has assigned this comment an ID
func (c *Comment) IsPersisted() bool {
	return c != nil && c.ID != ""
}

// CreateCommentRequest represents input for adding a comment to a post
type CreateCommentRequest struct {
	Date   time.Time `json:"date"`
	Text   string    `json:"text"`
	Author string    `json:"author"`
	Rating int       `json:"rating"`
}
