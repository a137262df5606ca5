package comments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) NewID(postID string) string {
	return m.Called(postID).String(0)
}

func (m *MockRepository) Create(ctx context.Context, comment *Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockRepository) ListByPost(ctx context.Context, postID string) ([]*Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Comment), args.Error(1)
}

func TestCreateComment_Success(t *testing.T) {
	repo := new(MockRepository)
	date := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	repo.On("NewID", "p1").Return("c1")
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
		return c.ID == "c1" && c.PostID == "p1" && c.Text == "nice oak" &&
			c.Author == "bob" && c.Date.Equal(date) && c.Rating == 0
	})).Return(nil)

	service := NewCommentService(repo)
	comment, err := service.CreateComment(context.Background(), "p1", CreateCommentRequest{
		Text:   "nice oak",
		Author: "bob",
		Date:   date,
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", comment.ID)
	assert.True(t, comment.IsPersisted())
	repo.AssertExpectations(t)
}

func TestCreateComment_DefaultsDateToNow(t *testing.T) {
	repo := new(MockRepository)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	repo.On("NewID", "p1").Return("c1")
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := &commentService{repo: repo, now: func() time.Time { return fixed }}
	comment, err := service.CreateComment(context.Background(), "p1", CreateCommentRequest{Text: "hi", Author: "bob"})
	require.NoError(t, err)
	assert.Equal(t, fixed, comment.Date)
}

func TestCreateComment_NoParentCheck(t *testing.T) {
	// the parent post is never looked up; the write goes straight to the sub-collection
	repo := new(MockRepository)
	repo.On("NewID", "does-not-exist").Return("c1")
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := NewCommentService(repo).CreateComment(context.Background(), "does-not-exist",
		CreateCommentRequest{Text: "orphan", Author: "bob"})
	assert.NoError(t, err)
}

func TestCreateComment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		postID  string
		req     CreateCommentRequest
		wantErr error
	}{
		{"missing post", "", CreateCommentRequest{Text: "x", Author: "a"}, ErrPostIDRequired},
		{"missing author", "p1", CreateCommentRequest{Text: "x"}, ErrAuthorRequired},
		{"missing text", "p1", CreateCommentRequest{Text: "   ", Author: "a"}, ErrContentEmpty},
		{"text too long", "p1", CreateCommentRequest{Text: strings.Repeat("a", maxCommentGraphemes+1), Author: "a"}, ErrContentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			_, err := NewCommentService(repo).CreateComment(context.Background(), tt.postID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateComment_GraphemesNotBytes(t *testing.T) {
	repo := new(MockRepository)
	repo.On("NewID", "p1").Return("c1")
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	// each flag is two code points and eight bytes but one grapheme
	text := strings.Repeat("🇺🇸", maxCommentGraphemes)
	_, err := NewCommentService(repo).CreateComment(context.Background(), "p1", CreateCommentRequest{Text: text, Author: "a"})
	assert.NoError(t, err)
}

func TestListCommentsByPost(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByPost", mock.Anything, "p1").Return([]*Comment{
		{ID: "c1", PostID: "p1", Text: "one"},
		{ID: "c2", PostID: "p1", Text: "two"},
	}, nil)

	got, err := NewCommentService(repo).ListCommentsByPost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "two", got["c2"].Text)
}

func TestListCommentsByPost_StoreError(t *testing.T) {
	repo := new(MockRepository)
	storeErr := errors.New("unreachable")
	repo.On("ListByPost", mock.Anything, "p1").Return(nil, storeErr)

	_, err := NewCommentService(repo).ListCommentsByPost(context.Background(), "p1")
	assert.ErrorIs(t, err, storeErr)
}
