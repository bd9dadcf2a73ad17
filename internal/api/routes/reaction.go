package routes

import (
	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers/reaction"
	"Delver/internal/api/middleware"
	"Delver/internal/core/reactions"
)

// RegisterReactionRoutes registers like/dislike endpoints
func RegisterReactionRoutes(r chi.Router, service reactions.Service, authMiddleware *middleware.AuthMiddleware) {
	reactHandler := reaction.NewReactHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/forums/like", reactHandler.HandleLike)
	r.With(authMiddleware.RequireAuth).Post("/forums/dislike", reactHandler.HandleDislike)
}
