package routes

import (
	"github.com/go-chi/chi/v5"

	"Delver/internal/api/handlers/user"
	"Delver/internal/core/users"
)

// RegisterUserRoutes registers public profile lookups
func RegisterUserRoutes(r chi.Router, service users.UserService) {
	profileHandler := user.NewProfileHandler(service)

	r.Get("/users/{username}", profileHandler.HandleGetProfile)
}
