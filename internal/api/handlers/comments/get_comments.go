package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Sightings/internal/api/handlers"
	"Sightings/internal/core/comments"
)

// GetCommentsHandler lists the comments of a post
type GetCommentsHandler struct {
	service comments.Service
}

// NewGetCommentsHandler creates a new handler for listing comments
func NewGetCommentsHandler(service comments.Service) *GetCommentsHandler {
	return &GetCommentsHandler{service: service}
}

// HandleList handles GET /api/posts/{postID}/comments
// Responds with an object keyed by comment ID; unknown posts yield an empty object.
func (h *GetCommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCommentsByPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
