package post

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"Sightings/internal/api/handlers"
	"Sightings/internal/api/middleware"
	"Sightings/internal/core/blobs"
	"Sightings/internal/core/posts"
)

// maxCreateBody leaves room for the form fields next to a full-size image
const maxCreateBody = blobs.MaxImageSize + 1<<20

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/posts
// Expects multipart/form-data with fields title, description, species,
// latitude, longitude, optional rating, and the image file under "image".
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)

	if err := r.ParseMultipartForm(maxCreateBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large (max 7MB)")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Expected a multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	// the author is always the authenticated user
	if r.FormValue("author") != "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest",
			"author must not be provided - derived from authenticated user")
		return
	}

	req := posts.CreatePostRequest{
		Author:      username,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Species:     strings.TrimSpace(r.FormValue("species")),
	}

	var err error
	if req.Latitude, err = parseFloatField(r, "latitude"); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	if req.Longitude, err = parseFloatField(r, "longitude"); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	if raw := r.FormValue("rating"); raw != "" {
		if req.Rating, err = strconv.Atoi(raw); err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "rating must be an integer")
			return
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "image file is required")
		return
	}
	defer func() { _ = file.Close() }()

	if req.Image, err = io.ReadAll(file); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Failed to read image")
		return
	}
	// browsers often label uploads as octet-stream; let the service sniff those
	if ct := header.Header.Get("Content-Type"); ct != "application/octet-stream" {
		req.ImageContentType = ct
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, post)
}

func parseFloatField(r *http.Request, field string) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, errors.New(field + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(field + " must be a number")
	}
	return v, nil
}
