package moderation

// Metadata is the species_identification record kept per post.
// Status is an opaque label; no transitions are enforced.
type Metadata struct {
	PostID               string `json:"postId" firestore:"-" bson:"_id"`
	PinnedIdentification string `json:"pinnedSpeciesIdentification" firestore:"pinnedspeciesidentification" bson:"pinnedspeciesidentification"`
	Status               string `json:"status" firestore:"status" bson:"status"`
}
