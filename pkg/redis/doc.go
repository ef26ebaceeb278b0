// Package redis wires up the go-redis client used as the session backend:
// URL-based configuration, connection retries, and a readiness check.
package redis
