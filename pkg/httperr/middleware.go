package httperr

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/letterdrop/pkg/logger"
)

// Middleware installs the per-request failure recorder and buffers the
// response. It is the outermost pipeline layer: after the inner layers
// (session flush, transaction resolution) have completed, it classifies the
// outcome exactly once, renders error responses from the attached
// descriptor, logs with severity matching the failure kind, and releases the
// buffered response to the client.
//
// Panics in inner layers are converted into internal descriptors so the
// transaction safety net and the opaque 500 contract hold on that path too.
func Middleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := NewRecorder()
			buf := NewResponseBuffer()
			ctx := WithRecorder(r.Context(), rec)

			start := time.Now()

			func() {
				defer func() {
					if p := recover(); p != nil {
						rec.Attach(Internal(fmt.Errorf("panic: %v", p)))
					}
				}()
				next.ServeHTTP(buf, r.WithContext(ctx))
			}()

			res := rec.Classify(buf.Status())
			if !res.OK() {
				render(buf, rec.Descriptor(), res)
			}

			logResult(log, r, res, time.Since(start))

			if err := buf.FlushTo(w); err != nil {
				log.ErrorContext(ctx, "failed to write response",
					logger.Error(err),
					logger.Component("httperr"),
				)
			}
		})
	}
}

// render replaces whatever the handler buffered with the canonical response
// for the descriptor: 422 with the validation message, 401 with a Basic
// challenge, 500 with an opaque body. A 5xx without a descriptor keeps the
// handler's response untouched.
func render(buf *ResponseBuffer, desc *Error, res Result) {
	if desc == nil {
		return
	}

	buf.DiscardBody()
	switch res.Kind {
	case KindValidation:
		buf.Header().Set("Content-Type", "text/plain; charset=utf-8")
		buf.WriteHeader(res.Status)
		_, _ = buf.Write([]byte(desc.Message()))
	case KindUnauthorized:
		buf.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", desc.Realm()))
		buf.WriteHeader(res.Status)
	default:
		buf.Header().Set("Content-Type", "text/plain; charset=utf-8")
		buf.WriteHeader(res.Status)
		_, _ = buf.Write([]byte("Internal Server Error"))
	}
}

func logResult(log *slog.Logger, r *http.Request, res Result, latency time.Duration) {
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", latency),
	}

	switch res.Kind {
	case KindNone:
		log.DebugContext(r.Context(), "request completed", attrs...)
	case KindValidation, KindUnauthorized:
		log.WarnContext(r.Context(), "request rejected",
			append(attrs, slog.String("kind", res.Kind.String()), logger.Error(res.Cause))...)
	default:
		log.ErrorContext(r.Context(), "request failed",
			append(attrs, logger.Error(res.Cause))...)
	}
}
