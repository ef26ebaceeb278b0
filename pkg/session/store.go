package session

import (
	"context"
	"time"
)

// Store persists one serialized content blob per session id. Connections to
// the backend are checked out per operation, never held for the request's
// duration.
type Store interface {
	// Load returns the content blob for id, or ErrSessionNotFound.
	Load(ctx context.Context, id string) ([]byte, error)

	// Save writes the content blob under id with the given lifetime.
	Save(ctx context.Context, id string, content []byte, ttl time.Duration) error

	// Delete removes the record for id. Deleting a missing id is not an
	// error.
	Delete(ctx context.Context, id string) error
}
