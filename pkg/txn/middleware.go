package txn

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/letterdrop/pkg/httperr"
	"github.com/dmitrymomot/letterdrop/pkg/logger"
)

// statuser is the part of the buffered response writer the coordinator needs
// to classify the outcome. chi's WrapResponseWriter satisfies it too.
type statuser interface {
	Status() int
}

// Middleware binds a database transaction to the lifetime of each request.
// The transaction begins lazily on first use via txn.Tx; when the handler
// completes, the classified failure kind decides commit or rollback. The
// deferred Close guarantees rollback on every other exit path: panics,
// cancellation, and client disconnects.
func Middleware(pool Beginner, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := NewHandle(pool)
			ctx := WithHandle(r.Context(), h)

			defer func() {
				if err := h.Close(ctx); err != nil {
					log.ErrorContext(ctx, "transaction safety-net rollback failed",
						logger.Error(err),
						logger.Component("txn"),
					)
				}
			}()

			next.ServeHTTP(w, r.WithContext(ctx))

			status := http.StatusOK
			if sw, ok := w.(statuser); ok {
				status = sw.Status()
			}

			res := httperr.Classify(ctx, status)
			if err := h.Resolve(ctx, OutcomeFor(res.Kind)); err != nil {
				httperr.Attach(ctx, httperr.Internal(err))
				log.ErrorContext(ctx, "failed to resolve transaction",
					logger.Error(err),
					slog.String("outcome", OutcomeFor(res.Kind).String()),
					logger.Component("txn"),
				)
			}
		})
	}
}
