package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP boundary can pick a status without
// inspecting error text.
type Kind int

const (
	Internal Kind = iota
	Validation
	InvalidReference
	NotFound
	Conflict
	InvalidCredentials
	Unauthenticated
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case InvalidReference:
		return "invalid_reference"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case InvalidCredentials:
		return "invalid_credentials"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a failure tagged with its Kind. Message is safe to show to
// callers; Err, when set, carries the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind and Message,
// which lets sentinel errors built with New be matched with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or Internal
// when err carries no tag.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the caller-facing message of a tagged error, or
// fallback for untagged ones.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}
