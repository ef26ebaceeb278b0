// Package httpserver wraps net/http's Server with context-driven graceful
// shutdown, env-based configuration, and a probe handler for liveness and
// readiness checks.
package httpserver
