package posts

import "errors"

// Kind classifies the outcome of a service operation
type Kind int

const (
	KindSuccess Kind = iota
	KindInvalid
	KindNotFound
	KindUnauthorized
	KindOutOfRange
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "Success"
	case KindInvalid:
		return "Invalid"
	case KindNotFound:
		return "NotFound"
	case KindUnauthorized:
		return "Unauthorized"
	case KindOutOfRange:
		return "OutOfRange"
	default:
		return "Failure"
	}
}

// Result is the tagged outcome of a mutating operation.
// Message is empty on success.
type Result struct {
	Kind    Kind
	Message string
}

// OK reports whether the operation succeeded
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}

// ResultOf converts a service error into a Result
func ResultOf(err error) Result {
	if err == nil {
		return Result{Kind: KindSuccess}
	}
	return Result{Kind: KindOf(err), Message: err.Error()}
}

// KindOf classifies err. Store failures after a successful lookup are
// failures even when they wrap ErrNotFound.
func KindOf(err error) Kind {
	var (
		updErr *UpdateError
		delErr *DeletionError
		upErr  *UpstreamError
	)
	switch {
	case err == nil:
		return KindSuccess
	case errors.As(err, &updErr), errors.As(err, &delErr), errors.As(err, &upErr):
		return KindFailure
	case IsValidationError(err):
		return KindInvalid
	case IsUnauthorized(err):
		return KindUnauthorized
	case IsNotFound(err):
		return KindNotFound
	case IsRangeError(err):
		return KindOutOfRange
	default:
		return KindFailure
	}
}
