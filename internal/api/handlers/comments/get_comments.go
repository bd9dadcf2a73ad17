package comments

import (
	"net/http"

	"Delver/internal/api/handlers"
	"Delver/internal/core/comments"
	"Delver/internal/core/posts"
)

// GetCommentsHandler serves paginated comment listings
type GetCommentsHandler struct {
	service comments.Service
}

// NewGetCommentsHandler creates a new handler for listing comments
func NewGetCommentsHandler(service comments.Service) *GetCommentsHandler {
	return &GetCommentsHandler{
		service: service,
	}
}

// HandleGetComments handles GET /forums/comments/post?id=&page=
// Returns the first 8*page comments under the post, oldest first
func (h *GetCommentsHandler) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	parentID := r.URL.Query().Get("id")
	if parentID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "id is required")
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	list, err := h.service.GetCommentsSorted(r.Context(), parentID, page)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.NewViews(list))
}
