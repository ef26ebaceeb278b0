// Package txn coordinates one database transaction per request.
//
// A Handle checks out a transaction from the pgx pool lazily on first use
// and resolves it exactly once: the commit/rollback decision is an explicit
// Outcome computed from the request's classified failure kind (internal
// failures roll back, everything else commits). A transaction still active
// when the request unwinds — panic, cancellation, disconnect — is rolled
// back by the deferred safety net, never left dangling or silently
// committed. Resolving a handle twice reports ErrAlreadyResolved.
//
// Isolation between requests is delegated to PostgreSQL's default isolation
// level; the coordinator itself does no cross-request coordination.
package txn
