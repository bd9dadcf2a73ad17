package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers"
	"Delver/internal/api/middleware"
	"Delver/internal/core/comments"
	"Delver/internal/core/posts"
)

// DeleteCommentHandler handles comment deletion requests
type DeleteCommentHandler struct {
	service comments.Service
}

// NewDeleteCommentHandler creates a new handler for deleting comments
func NewDeleteCommentHandler(service comments.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /forums/comments/{post_id}/{creation_time}
// The author or an admin may delete; direct replies are kept and marked
// with the deleted parent.
func (h *DeleteCommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	// 1. Get authenticated username from context
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	// 2. Both key components come from the path
	key := posts.Key{
		PostID:       chi.URLParam(r, "post_id"),
		CreationTime: chi.URLParam(r, "creation_time"),
	}
	if !key.Valid() {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest",
			"post_id and creation_time are required")
		return
	}

	// 3. Call service to delete comment
	if err := h.service.DeleteComment(r.Context(), username, key); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Comment deleted successfully.",
	})
}
