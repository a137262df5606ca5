package posts

// Post represents a species sighting as stored in the document store.
// ImageURL is always a resolved URL; image bytes only travel on CreatePostRequest.
type Post struct {
	ID          string  `json:"id" firestore:"-" bson:"_id"`
	Author      string  `json:"author" firestore:"author" bson:"author"`
	Title       string  `json:"title" firestore:"title" bson:"title"`
	Description string  `json:"description" firestore:"description" bson:"description"`
	Species     string  `json:"species" firestore:"species" bson:"species"`
	ImageURL    string  `json:"image" firestore:"image" bson:"image"`
	Latitude    float64 `json:"latitude" firestore:"latitude" bson:"latitude"`
	Longitude   float64 `json:"longitude" firestore:"longitude" bson:"longitude"`
	Rating      int     `json:"rating" firestore:"rating" bson:"rating"`
}

// IsPersisted reports whether the store has assigned this post an ID
func (p *Post) IsPersisted() bool {
	return p != nil && p.ID != ""
}

// CreatePostRequest represents input for creating a new post.
// Image holds the raw image bytes; the stored post carries the resolved URL instead.
type CreatePostRequest struct {
	Author           string  `json:"author"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Species          string  `json:"species"`
	Image            []byte  `json:"-"`
	ImageContentType string  `json:"-"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Rating           int     `json:"rating"`
}

// Range is an inclusive numeric range
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within [Min, Max]
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ListFilter is what a Repository can evaluate server-side.
// Document stores of this kind cannot combine range filters on two fields,
// so only the longitude range is pushed down; latitude is filtered by the service.
type ListFilter struct {
	Species   *string
	Longitude *Range
}

// BoundingBox selects posts by coordinates. All bounds are inclusive.
type BoundingBox struct {
	LonMax float64
	LonMin float64
	LatMax float64
	LatMin float64
}

// Longitude returns the longitude range of the box
func (b BoundingBox) Longitude() Range {
	return Range{Min: b.LonMin, Max: b.LonMax}
}

// Latitude returns the latitude range of the box
func (b BoundingBox) Latitude() Range {
	return Range{Min: b.LatMin, Max: b.LatMax}
}

// Contains reports whether the post lies inside the box
func (b BoundingBox) Contains(p *Post) bool {
	return b.Longitude().Contains(p.Longitude) && b.Latitude().Contains(p.Latitude)
}
