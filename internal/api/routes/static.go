package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterImageRoutes serves locally stored images under /images/*
func RegisterImageRoutes(r chi.Router, images http.Handler) {
	r.Get("/images/*", images.ServeHTTP)
}

// RegisterHealthRoutes registers the liveness endpoint
func RegisterHealthRoutes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
