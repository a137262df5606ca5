package users

// ProfileStats is the profile statistics record kept per user.
// The record is owned by the account module; this repository only reads it.
type ProfileStats struct {
	Username     string `json:"username" firestore:"-" bson:"_id"`
	IsModerator  bool   `json:"isModerator" firestore:"isModerator" bson:"isModerator"`
	PostCount    int    `json:"postCount" firestore:"postCount" bson:"postCount"`
	CommentCount int    `json:"commentCount" firestore:"commentCount" bson:"commentCount"`
	Reputation   int    `json:"reputation" firestore:"reputation" bson:"reputation"`
}
