package session

import (
	"net/http"

	"github.com/dmitrymomot/letterdrop/pkg/httperr"
	"github.com/dmitrymomot/letterdrop/pkg/logger"
)

// Middleware attaches a session to every request and commits it after the
// handler (and the layers inside this one, including transaction
// resolution) have completed. A flush failure is reported as an internal
// failure; the already-resolved transaction is unaffected.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.Request(r)
		ctx := WithSession(r.Context(), sess)

		next.ServeHTTP(w, r.WithContext(ctx))

		if err := m.Commit(ctx, w, sess); err != nil {
			httperr.Attach(ctx, httperr.Internal(err))
			m.log.ErrorContext(ctx, "failed to flush session",
				logger.Error(err),
				logger.Component("session"),
			)
		}
	})
}
