package comments

import (
	"net/http"

	"Delver/internal/api/handlers"
	"Delver/internal/api/middleware"
	"Delver/internal/core/comments"
	"Delver/internal/core/posts"
)

// UpdateCommentHandler handles comment edits
type UpdateCommentHandler struct {
	service comments.Service
}

// NewUpdateCommentHandler creates a new handler for updating comments
func NewUpdateCommentHandler(service comments.Service) *UpdateCommentHandler {
	return &UpdateCommentHandler{
		service: service,
	}
}

// HandleUpdate handles PATCH /forums/comments
//
// Request body: { "comment_id", "comment_creation_time", "body" }
// Response: the updated comment
func (h *UpdateCommentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	// 1. Get authenticated username from context
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	// 2. Parse and validate the body (100KB limit)
	var req comments.UpdateCommentRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	// 3. Only the author may edit; the service enforces it
	updated, err := h.service.UpdateComment(r.Context(), username, req)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.NewView(updated))
}
