// Package logger builds configured slog.Logger instances with
// environment-aware defaults and shared attribute helpers.
//
// It is initialized exactly once at process startup (see cmd/server) and
// never re-entered per request.
package logger
