package txn

import "errors"

var (
	// ErrBeginFailed indicates the pool checkout failed.
	ErrBeginFailed = errors.New("txn.begin_failed")

	// ErrAlreadyResolved indicates a second Resolve on a terminal handle,
	// which is a programming error rather than an acceptable no-op.
	ErrAlreadyResolved = errors.New("txn.already_resolved")

	// ErrCommitFailed indicates the commit itself failed.
	ErrCommitFailed = errors.New("txn.commit_failed")

	// ErrRollbackFailed indicates the rollback itself failed.
	ErrRollbackFailed = errors.New("txn.rollback_failed")

	// ErrInvalidOutcome indicates Resolve was called with an outcome that is
	// neither Commit nor Rollback.
	ErrInvalidOutcome = errors.New("txn.invalid_outcome")

	// ErrNoHandle indicates the transaction middleware is not installed.
	ErrNoHandle = errors.New("txn.no_handle_in_context")
)
