package comments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"Sightings/internal/api/handlers"
	"Sightings/internal/api/middleware"
	"Sightings/internal/core/comments"
)

// maxCommentBody caps the JSON body; 10000 graphemes fit well within it
const maxCommentBody = 256 * 1024

// CreateCommentInput is the JSON body of a comment creation request
type CreateCommentInput struct {
	Text   string    `json:"text"`
	Date   time.Time `json:"date,omitempty"`
	Rating int       `json:"rating,omitempty"`
}

// CreateCommentHandler handles comment creation
type CreateCommentHandler struct {
	service comments.Service
}

// NewCreateCommentHandler creates a new handler for creating comments
func NewCreateCommentHandler(service comments.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// HandleCreate handles POST /api/posts/{postID}/comments
// The parent post is not looked up; the comment is written under whatever id is given.
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCommentBody)

	var input CreateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	comment, err := h.service.CreateComment(r.Context(), chi.URLParam(r, "postID"), comments.CreateCommentRequest{
		Text:   input.Text,
		Author: username,
		Date:   input.Date,
		Rating: input.Rating,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, comment)
}
