package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers"
	"Delver/internal/api/middleware"
	"Delver/internal/core/posts"
)

// DeleteHandler handles moderator post deletion
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /forums/{id}
// Mounted behind RequireAdmin; the service still re-checks the caller's
// role against the user directory before deleting.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	postID := chi.URLParam(r, "id")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "post id is required")
		return
	}

	if err := h.service.DeletePostByID(r.Context(), username, postID); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Successfully deleted the post!",
	})
}
