package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers"
	"Delver/internal/core/users"
)

// ProfileHandler serves public user profiles
type ProfileHandler struct {
	service users.UserService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service users.UserService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// HandleGetProfile handles GET /users/{username}
// Email and credentials never leave the service; only the Profile view is returned.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "username"))
	switch {
	case errors.Is(err, users.ErrUsernameRequired):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	case errors.Is(err, users.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, "UserNotFound", "User not found")
		return
	case err != nil:
		log.Printf("Failed to get profile: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}
