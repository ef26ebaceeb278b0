package txn

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type handleContextKey struct{}

// WithHandle stores the request's transaction handle in the context.
func WithHandle(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, handleContextKey{}, h)
}

// HandleFrom retrieves the request's transaction handle from the context.
func HandleFrom(ctx context.Context) (*Handle, bool) {
	h, ok := ctx.Value(handleContextKey{}).(*Handle)
	return h, ok
}

// Tx returns the request's transaction, beginning one lazily on first use.
func Tx(ctx context.Context) (pgx.Tx, error) {
	h, ok := HandleFrom(ctx)
	if !ok {
		return nil, ErrNoHandle
	}
	return h.Tx(ctx)
}
