// Package handlers holds the JSON helpers shared by the HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"Delver/internal/core/posts"
)

// MaxBodyBytes caps request bodies for forum writes
const MaxBodyBytes = 100 * 1024

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	WriteJSON(w, statusCode, errorResponse{Error: errorType, Message: message})
}

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Log encoding errors but don't return error response (headers already sent)
		log.Printf("Failed to encode response: %v", err)
	}
}

// DecodeJSON reads a size-limited JSON body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				fmt.Sprintf("Request body too large (max %dKB)", MaxBodyBytes/1024))
			return false
		}
		WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "InvalidRequest", validationMessage(err))
		return false
	}
	return true
}

// validationMessage turns validator errors into "field is required" style text
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", jsonFieldName(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// jsonFieldName maps Go field names of request DTOs to their JSON names
func jsonFieldName(field string) string {
	switch field {
	case "PostID":
		return "post_id"
	case "CommentID":
		return "comment_id"
	case "CommentCreationTime":
		return "comment_creation_time"
	default:
		return strings.ToLower(field)
	}
}

// HandleServiceError maps service errors to HTTP responses by kind
func HandleServiceError(w http.ResponseWriter, err error) {
	switch posts.KindOf(err) {
	case posts.KindInvalid:
		WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case posts.KindUnauthorized:
		WriteError(w, http.StatusForbidden, "NotAuthorized", err.Error())

	case posts.KindNotFound:
		WriteError(w, http.StatusNotFound, "NotFound", err.Error())

	case posts.KindOutOfRange:
		WriteError(w, http.StatusBadRequest, "PageOutOfRange", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in forum handler: %v", err)
		WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}

// ParsePage reads the page query parameter. Missing means page 1.
func ParsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, posts.NewValidationError("page", "must be a positive integer")
	}
	return page, nil
}
