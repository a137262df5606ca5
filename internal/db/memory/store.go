// Package memory is an in-process document store with the same query
// limitations as the hosted store: posts can be filtered server-side on
// species equality and a longitude range only.
package memory

import (
	"context"
	"sync"

	"Sightings/internal/core/comments"
	"Sightings/internal/core/moderation"
	"Sightings/internal/core/posts"
	"Sightings/internal/core/users"

	"github.com/google/uuid"
)

// Store holds every collection behind one lock
type Store struct {
	mu       sync.RWMutex
	posts    map[string]posts.Post
	comments map[string]map[string]comments.Comment // postID -> commentID -> comment
	metadata map[string]moderation.Metadata
	profiles map[string]users.ProfileStats
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		posts:    make(map[string]posts.Post),
		comments: make(map[string]map[string]comments.Comment),
		metadata: make(map[string]moderation.Metadata),
		profiles: make(map[string]users.ProfileStats),
	}
}

// Posts returns the posts collection
func (s *Store) Posts() posts.Repository { return &postRepo{s} }

// Comments returns the nested comments collections
func (s *Store) Comments() comments.Repository { return &commentRepo{s} }

// Moderation returns the species_identification collection
func (s *Store) Moderation() moderation.Repository { return &moderationRepo{s} }

// Profiles returns the users collection
func (s *Store) Profiles() users.ProfileRepository { return &profileRepo{s} }

// PutProfile seeds a profile statistics record
func (s *Store) PutProfile(p users.ProfileStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.Username] = p
}

type postRepo struct{ s *Store }

func (r *postRepo) NewID() string { return uuid.NewString() }

func (r *postRepo) Create(ctx context.Context, post *posts.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[post.ID] = *post
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, posts.ErrPostNotFound
	}
	return &p, nil
}

func (r *postRepo) List(ctx context.Context, filter posts.ListFilter) ([]*posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*posts.Post
	for _, p := range r.s.posts {
		if filter.Species != nil && p.Species != *filter.Species {
			continue
		}
		if filter.Longitude != nil && !filter.Longitude.Contains(p.Longitude) {
			continue
		}
		result = append(result, &p)
	}
	return result, nil
}

type commentRepo struct{ s *Store }

func (r *commentRepo) NewID(string) string { return uuid.NewString() }

func (r *commentRepo) Create(ctx context.Context, c *comments.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.comments[c.PostID]
	if !ok {
		sub = make(map[string]comments.Comment)
		r.s.comments[c.PostID] = sub
	}
	sub[c.ID] = *c
	return nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sub := r.s.comments[postID]
	result := make([]*comments.Comment, 0, len(sub))
	for _, c := range sub {
		result = append(result, &c)
	}
	return result, nil
}

type moderationRepo struct{ s *Store }

func (r *moderationRepo) Create(ctx context.Context, md *moderation.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.metadata[md.PostID]; ok {
		return moderation.ErrMetadataExists
	}
	r.s.metadata[md.PostID] = *md
	return nil
}

func (r *moderationRepo) Get(ctx context.Context, postID string) (*moderation.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	md, ok := r.s.metadata[postID]
	if !ok {
		return nil, moderation.ErrMetadataNotFound
	}
	return &md, nil
}

func (r *moderationRepo) UpdatePinned(ctx context.Context, postID, identificationID string) error {
	return r.update(ctx, postID, func(md *moderation.Metadata) {
		md.PinnedIdentification = identificationID
	})
}

func (r *moderationRepo) UpdateStatus(ctx context.Context, postID, status string) error {
	return r.update(ctx, postID, func(md *moderation.Metadata) {
		md.Status = status
	})
}

func (r *moderationRepo) update(ctx context.Context, postID string, apply func(*moderation.Metadata)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	md, ok := r.s.metadata[postID]
	if !ok {
		return moderation.ErrMetadataNotFound
	}
	apply(&md)
	r.s.metadata[postID] = md
	return nil
}

type profileRepo struct{ s *Store }

func (r *profileRepo) GetProfileStats(ctx context.Context, username string) (*users.ProfileStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[username]
	if !ok {
		return nil, users.ErrProfileNotFound
	}
	return &p, nil
}
