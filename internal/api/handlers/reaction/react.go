package reaction

import (
	"net/http"

	"Delver/internal/api/handlers"
	"Delver/internal/api/middleware"
	"Delver/internal/core/reactions"
)

// ReactRequest is the like/dislike payload
type ReactRequest struct {
	PostID string `json:"post_id" validate:"required"`
}

// ReactResponse reports which branch of the like/dislike table was taken
type ReactResponse struct {
	Message string           `json:"message"`
	PostID  string           `json:"post_id"`
	Change  reactions.Change `json:"change"`
	State   string           `json:"state"`
	Action  reactions.Action `json:"action"`
}

// ReactHandler handles like and dislike requests
type ReactHandler struct {
	service reactions.Service
}

// NewReactHandler creates a new reaction handler
func NewReactHandler(service reactions.Service) *ReactHandler {
	return &ReactHandler{
		service: service,
	}
}

// HandleLike handles POST /forums/like
func (h *ReactHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, reactions.ActionLike)
}

// HandleDislike handles POST /forums/dislike
func (h *ReactHandler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, reactions.ActionDislike)
}

func (h *ReactHandler) handle(w http.ResponseWriter, r *http.Request, action reactions.Action) {
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req ReactRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	outcome, err := h.service.React(r.Context(), username, req.PostID, action)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ReactResponse{
		Message: outcome.Message(),
		PostID:  outcome.PostID,
		Change:  outcome.Change,
		State:   outcome.State(),
		Action:  outcome.Action,
	})
}
