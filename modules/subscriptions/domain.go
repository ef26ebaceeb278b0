package subscriptions

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidName  = errors.New("subscriptions.invalid_name")
	ErrInvalidEmail = errors.New("subscriptions.invalid_email")
)

const (
	statusPending   = "pending_confirmation"
	statusConfirmed = "confirmed"
)

// NewSubscriber is a validated signup request.
type NewSubscriber struct {
	Name  string
	Email string
}

const maxNameLength = 256

// forbiddenNameChars would allow trivial HTML or SQL fragments inside a
// display name.
var forbiddenNameChars = `/()"<>\{}`

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ParseNewSubscriber validates raw form input into a NewSubscriber.
func ParseNewSubscriber(name, email string) (NewSubscriber, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewSubscriber{}, fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return NewSubscriber{}, fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidName, maxNameLength)
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return NewSubscriber{}, fmt.Errorf("%w: name contains forbidden characters", ErrInvalidName)
	}

	if !emailRegex.MatchString(email) {
		return NewSubscriber{}, fmt.Errorf("%w: %q is not a valid email", ErrInvalidEmail, email)
	}

	return NewSubscriber{Name: name, Email: email}, nil
}

// ValidEmail reports whether a stored email still parses. Subscriber rows
// predating current validation rules may carry addresses that no longer do.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
