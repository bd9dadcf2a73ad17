package routes

import (
	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers/post"
	"Delver/internal/api/middleware"
	"Delver/internal/core/posts"
)

// RegisterPostRoutes registers post endpoints under /forums.
// Reads are public; creation requires a token and the id-only delete
// requires an admin token.
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	getHandler := post.NewGetHandler(service)

	r.Get("/forums/landing", getHandler.HandleLanding)
	r.Get("/forums/user/{username}", getHandler.HandleByAuthor)
	r.Get("/forums/post/{id}", getHandler.HandleGet)

	r.With(authMiddleware.RequireAuth).Post("/forums", createHandler.HandleCreate)
	r.With(authMiddleware.RequireAuth).Post("/forums/{id}", createHandler.HandleReply)
	r.With(authMiddleware.RequireAdmin).Delete("/forums/{id}", deleteHandler.HandleDelete)
}
