package auth

import "errors"

var (
	// ErrUnauthorized covers every credential failure: unknown username,
	// wrong password, malformed stored hash. Callers must not expose
	// which check failed.
	ErrUnauthorized = errors.New("auth.unauthorized")

	// ErrInvalidHash indicates a stored hash is not a valid PHC string.
	ErrInvalidHash = errors.New("auth.invalid_hash_format")

	// ErrIncompatibleVersion indicates a stored hash uses an Argon2
	// version this build cannot verify.
	ErrIncompatibleVersion = errors.New("auth.incompatible_argon2_version")

	// ErrVerifierClosed indicates the worker pool has been shut down.
	ErrVerifierClosed = errors.New("auth.verifier_closed")

	// ErrLookupFailed indicates the credential lookup query failed for a
	// reason other than a missing row.
	ErrLookupFailed = errors.New("auth.lookup_failed")
)
