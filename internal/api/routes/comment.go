package routes

import (
	"github.com/go-chi/chi/v5"

	commentHandlers "Sightings/internal/api/handlers/comments"
	"Sightings/internal/api/middleware"
	"Sightings/internal/core/comments"
)

// RegisterCommentRoutes registers comment endpoints nested under a post
func RegisterCommentRoutes(r chi.Router, service comments.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := commentHandlers.NewCreateCommentHandler(service)
	listHandler := commentHandlers.NewGetCommentsHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{postID}/comments", createHandler.HandleCreate)
	r.With(authMiddleware.OptionalAuth).Get("/api/posts/{postID}/comments", listHandler.HandleList)
}
