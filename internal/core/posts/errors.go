package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for post and comment operations
var (
	// ErrNotFound is returned by repositories when no item matches the key
	ErrNotFound = errors.New("post not found")

	// ErrAlreadyExists is returned by Repository.Create when the key is taken
	ErrAlreadyExists = errors.New("post already exists")

	// ErrPreconditionFailed is returned by repositories when a conditional
	// write found the item but its precondition no longer held
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrNotAuthorized is returned when the caller may not mutate the post
	ErrNotAuthorized = errors.New("not authorized to modify this post")

	// ErrConcurrentModification is returned when the item changed between
	// the read and the conditional write
	ErrConcurrentModification = errors.New("post was modified concurrently")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string // e.g., "post", "comment", "parent post"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Unwrap lets errors.Is(err, ErrNotFound) match
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if error is an authorization failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrNotAuthorized)
}

// RangeError is returned when a page starts past the available content
type RangeError struct {
	Page     int
	PageSize int
	Total    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("page %d exceeds available content (%d items, %d per page)", e.Page, e.Total, e.PageSize)
}

// IsRangeError checks if error is a pagination range error
func IsRangeError(err error) bool {
	var rangeErr *RangeError
	return errors.As(err, &rangeErr)
}

// UpdateError is a store-level failure after a successful initial lookup
type UpdateError struct {
	Key Key
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to update %s: %v", e.Key, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// DeletionError is a failure in any step of a delete cascade
type DeletionError struct {
	Key   Key
	Stage string // "children" or "record"
	Err   error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("failed to delete %s (%s): %v", e.Key, e.Stage, e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

// UpstreamError wraps failures of a collaborator (store or user directory)
type UpstreamError struct {
	Collaborator string
	Err          error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Collaborator, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Upstream wraps err as an UpstreamError unless it already carries a kind
func Upstream(collaborator string, err error) error {
	var up *UpstreamError
	if err == nil || KindOf(err) != KindFailure || errors.As(err, &up) {
		return err
	}
	return &UpstreamError{Collaborator: collaborator, Err: err}
}
