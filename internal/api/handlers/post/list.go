package post

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"Sightings/internal/api/handlers"
	"Sightings/internal/core/posts"
)

// boxParams are the query parameters of a location filter; all or none must be given
var boxParams = []string{"lonMin", "lonMax", "latMin", "latMax"}

// ListHandler serves post listings
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /api/posts?species=&lonMin=&lonMax=&latMin=&latMax=
// Responds with an object keyed by post ID.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	box, hasBox, err := parseBox(query)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := h.list(r.Context(), query.Get("species"), box, hasBox)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

func (h *ListHandler) list(ctx context.Context, species string, box posts.BoundingBox, hasBox bool) (map[string]*posts.Post, error) {
	switch {
	case species != "" && hasBox:
		return h.service.ListPostsBySpeciesAndLocation(ctx, species, box)
	case species != "":
		return h.service.ListPostsBySpecies(ctx, species)
	case hasBox:
		return h.service.ListPostsByLocation(ctx, box)
	default:
		return h.service.ListPosts(ctx)
	}
}

func parseBox(query url.Values) (posts.BoundingBox, bool, error) {
	values := make([]float64, len(boxParams))
	present := 0
	for i, name := range boxParams {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return posts.BoundingBox{}, false, fmt.Errorf("%s must be a number", name)
		}
		values[i] = v
		present++
	}

	switch present {
	case 0:
		return posts.BoundingBox{}, false, nil
	case len(boxParams):
		return posts.BoundingBox{
			LonMin: values[0],
			LonMax: values[1],
			LatMin: values[2],
			LatMax: values[3],
		}, true, nil
	default:
		return posts.BoundingBox{}, false, fmt.Errorf("location filter needs all of lonMin, lonMax, latMin, latMax")
	}
}
