package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers"
	"Delver/internal/api/middleware"
	"Delver/internal/core/posts"
)

// CreateHandler handles post and reply creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /forums
// Creates a new top-level post written by the authenticated user
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// 1. Extract authenticated username (injected by auth middleware)
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	// 2. Parse and validate request body
	var req posts.CreatePostRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	// 3. Author comes from the token, never from the body
	post, err := h.service.CreatePost(r.Context(), username, req)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, posts.NewView(post))
}

// HandleReply handles POST /forums/{id}
// Creates a reply under the post with the given id
func (h *CreateHandler) HandleReply(w http.ResponseWriter, r *http.Request) {
	// 1. Extract authenticated username
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	// 2. Parent id comes from the path
	parentID := chi.URLParam(r, "id")
	if parentID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "post id is required")
		return
	}

	// 3. Parse and validate request body
	var req posts.CreateReplyRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	reply, err := h.service.CreateReply(r.Context(), username, parentID, req)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, posts.NewView(reply))
}
