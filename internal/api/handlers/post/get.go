package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers"
	"Delver/internal/core/posts"
)

// GetHandler serves the public read endpoints for posts
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new read handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// HandleLanding handles GET /forums/landing?page=N
func (h *GetHandler) HandleLanding(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	list, err := h.service.GetPostsSorted(r.Context(), page)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.NewViews(list))
}

// HandleByAuthor handles GET /forums/user/{username}
func (h *GetHandler) HandleByAuthor(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.GetPostsByAuthor(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.NewViews(list))
}

// HandleGet handles GET /forums/post/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.NewView(post))
}
