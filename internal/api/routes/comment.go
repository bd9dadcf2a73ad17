package routes

import (
	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers/comments"
	"Delver/internal/api/middleware"
	commentsCore "Delver/internal/core/comments"
)

// RegisterCommentRoutes registers comment endpoints under /forums/comments.
// Edit and delete require authentication.
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service, authMiddleware *middleware.AuthMiddleware) {
	updateHandler := comments.NewUpdateCommentHandler(service)
	deleteHandler := comments.NewDeleteCommentHandler(service)
	getHandler := comments.NewGetCommentsHandler(service)

	r.Get("/forums/comments/post", getHandler.HandleGetComments)

	r.With(authMiddleware.RequireAuth).Patch("/forums/comments", updateHandler.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Delete(
		"/forums/comments/{post_id}/{creation_time}",
		deleteHandler.HandleDelete)
}
