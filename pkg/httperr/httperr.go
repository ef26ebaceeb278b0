package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure. The absence of a descriptor on a
// successful status code means success.
type Kind int

const (
	// KindNone means no failure was recorded.
	KindNone Kind = iota

	// KindValidation covers client-supplied data that was rejected. The
	// message is safe to expose to the caller.
	KindValidation

	// KindUnauthorized covers identity or credential failures. Only the
	// realm is exposed, never the reason.
	KindUnauthorized

	// KindInternal covers anything unexpected. The cause is kept for logs
	// only; the caller sees an opaque 500.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// statusFor maps a failure kind to its response status code.
func statusFor(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure descriptor that any layer of the request pipeline may
// attach to the in-flight response. Outer layers consume only the kind.
type Error struct {
	kind    Kind
	message string
	realm   string
	cause   error
}

// Validation describes rejected client input. The message is returned to the
// caller verbatim with a 422 status.
func Validation(message string) *Error {
	return &Error{kind: KindValidation, message: message}
}

// Validationf is Validation with fmt-style formatting.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Unauthorized describes a credential failure within the given realm. The
// realm is echoed in the WWW-Authenticate challenge; nothing else leaks.
func Unauthorized(realm string) *Error {
	return &Error{kind: KindUnauthorized, realm: realm}
}

// Internal describes an unexpected failure. The cause is retained for logs
// and traces; the response body stays opaque.
func Internal(cause error) *Error {
	return &Error{kind: KindInternal, cause: cause}
}

// Internalf wraps a formatted message and an underlying cause into an
// internal descriptor.
func Internalf(cause error, format string, args ...any) *Error {
	return Internal(fmt.Errorf(format+": %w", append(args, cause)...))
}

func (e *Error) Kind() Kind { return e.kind }

// Realm reports the authentication realm of an unauthorized descriptor.
func (e *Error) Realm() string { return e.realm }

// Message reports the client-safe message of a validation descriptor.
func (e *Error) Message() string { return e.message }

func (e *Error) Error() string {
	switch e.kind {
	case KindValidation:
		return e.message
	case KindUnauthorized:
		return fmt.Sprintf("unauthorized (realm %q)", e.realm)
	case KindInternal:
		if e.cause != nil {
			return e.cause.Error()
		}
		return "internal error"
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.cause }

// From converts an arbitrary error into a descriptor. Errors that already
// carry a descriptor pass through; everything else becomes Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
