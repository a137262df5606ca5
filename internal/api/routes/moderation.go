package routes

import (
	"github.com/go-chi/chi/v5"

	moderationHandlers "Sightings/internal/api/handlers/moderation"
	"Sightings/internal/api/middleware"
	"Sightings/internal/core/moderation"
)

// RegisterModerationRoutes registers species identification and moderator endpoints
func RegisterModerationRoutes(r chi.Router, service moderation.Service, sessions *moderation.Sessions, authMiddleware *middleware.AuthMiddleware) {
	h := moderationHandlers.NewHandler(service, sessions)

	r.With(authMiddleware.OptionalAuth).Get("/api/posts/{postID}/identification", h.HandleGet)

	// moderator-only writes; the role check happens in the handler
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Post("/api/posts/{postID}/identification", h.HandleCreate)
		r.Post("/api/posts/{postID}/identification/pin", h.HandlePin)
		r.Post("/api/posts/{postID}/identification/status", h.HandleSetStatus)

		r.Get("/api/me/moderator", h.HandleMe)
		r.Post("/api/me/moderator/refresh", h.HandleRefresh)
	})
}
