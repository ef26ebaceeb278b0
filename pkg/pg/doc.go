// Package pg provides the PostgreSQL bootstrap layer: connection pooling via
// pgx/v5, goose schema migrations, a readiness check, and error helpers used
// by the storage code to classify driver failures.
package pg
