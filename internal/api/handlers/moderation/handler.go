package moderation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Sightings/internal/api/handlers"
	"Sightings/internal/api/middleware"
	"Sightings/internal/core/moderation"
)

const maxModerationBody = 16 * 1024

// Handler serves species identification metadata and the caller's moderator flag
type Handler struct {
	service  moderation.Service
	sessions *moderation.Sessions
}

// NewHandler creates a moderation handler
func NewHandler(service moderation.Service, sessions *moderation.Sessions) *Handler {
	return &Handler{service: service, sessions: sessions}
}

type createInput struct {
	Status string `json:"status"`
}

type pinInput struct {
	IdentificationID string `json:"identificationId"`
}

type statusInput struct {
	Status string `json:"status"`
}

// ModeratorStatus is the response of the /api/me/moderator endpoints
type ModeratorStatus struct {
	Username    string `json:"username"`
	IsModerator bool   `json:"isModerator"`
}

// HandleGet handles GET /api/posts/{postID}/identification
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	md, err := h.service.GetMetadata(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if md == nil {
		handleServiceError(w, moderation.ErrMetadataNotFound)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, md)
}

// HandleCreate handles POST /api/posts/{postID}/identification
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input createInput
	if !decodeBody(w, r, &input) || !h.requireModerator(w, r) {
		return
	}

	md, err := h.service.CreateMetadata(r.Context(), chi.URLParam(r, "postID"), input.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, md)
}

// HandlePin handles POST /api/posts/{postID}/identification/pin
func (h *Handler) HandlePin(w http.ResponseWriter, r *http.Request) {
	var input pinInput
	if !decodeBody(w, r, &input) || !h.requireModerator(w, r) {
		return
	}

	if err := h.service.PinIdentification(r.Context(), chi.URLParam(r, "postID"), input.IdentificationID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSetStatus handles POST /api/posts/{postID}/identification/status
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var input statusInput
	if !decodeBody(w, r, &input) || !h.requireModerator(w, r) {
		return
	}

	if err := h.service.SetStatus(r.Context(), chi.URLParam(r, "postID"), input.Status); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /api/me/moderator
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	h.writeModeratorStatus(w, r)
}

// HandleRefresh handles POST /api/me/moderator/refresh
// Drops the caller's cached profile so a role change is picked up.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	h.sessions.Invalidate(username)
	h.writeModeratorStatus(w, r)
}

func (h *Handler) writeModeratorStatus(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	isMod, err := h.sessions.For(username).IsModerator(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ModeratorStatus{Username: username, IsModerator: isMod})
}

// requireModerator writes the error response and returns false unless the caller is a moderator
func (h *Handler) requireModerator(w http.ResponseWriter, r *http.Request) bool {
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return false
	}

	isMod, err := h.sessions.For(username).IsModerator(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return false
	}
	if !isMod {
		handleServiceError(w, moderation.ErrNotModerator)
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxModerationBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}
