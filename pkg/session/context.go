package session

import (
	"context"
	"encoding/json"
)

type sessionContextKey struct{}

// WithSession stores the request's session in the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext retrieves the request's session from the context.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session)
	return sess, ok
}

// Get reads a typed value from the request's session. Content round-trips
// through JSON, so values written as richer types (uuid.UUID, structs) come
// back decoded into T rather than as raw maps and floats.
func Get[T any](ctx context.Context, key string) (T, bool, error) {
	var zero T

	sess, ok := FromContext(ctx)
	if !ok {
		return zero, false, ErrNoSession
	}

	raw, ok, err := sess.Value(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}

	if v, ok := raw.(T); ok {
		return v, true, nil
	}

	// The value was either written this request as a richer type or read
	// back from JSON as generic types; normalize through JSON either way.
	blob, err := json.Marshal(raw)
	if err != nil {
		return zero, false, ErrDecodeFailed
	}
	var v T
	if err := json.Unmarshal(blob, &v); err != nil {
		return zero, false, ErrDecodeFailed
	}
	return v, true, nil
}

// Insert writes a value into the request's session.
func Insert(ctx context.Context, key string, value any) error {
	sess, ok := FromContext(ctx)
	if !ok {
		return ErrNoSession
	}
	return sess.Insert(ctx, key, value)
}

// Delete removes a key from the request's session. Deleting a missing key
// is not an error.
func Delete(ctx context.Context, key string) error {
	sess, ok := FromContext(ctx)
	if !ok {
		return ErrNoSession
	}
	return sess.Delete(ctx, key)
}

// Reset rotates the request's session id and clears its content. Call on
// every privilege change, e.g. login.
func Reset(ctx context.Context) error {
	sess, ok := FromContext(ctx)
	if !ok {
		return ErrNoSession
	}
	return sess.Reset(ctx)
}
