package routes

import (
	"github.com/go-chi/chi/v5"

	"Sightings/internal/api/handlers/post"
	"Sightings/internal/api/middleware"
	"Sightings/internal/core/posts"
)

// RegisterPostRoutes registers post endpoints on the router
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	getHandler := post.NewGetHandler(service)
	listHandler := post.NewListHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/posts", createHandler.HandleCreate)

	r.With(authMiddleware.OptionalAuth).Get("/api/posts", listHandler.HandleList)
	r.With(authMiddleware.OptionalAuth).Get("/api/posts/{postID}", getHandler.HandleGet)
}
