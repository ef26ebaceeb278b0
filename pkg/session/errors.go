package session

import "errors"

var (
	// ErrSessionNotFound indicates no record exists for the session id.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrNoSession indicates the session middleware is not installed.
	ErrNoSession = errors.New("session.not_in_context")

	// ErrLoadFailed indicates the backend fetch failed for a reason other
	// than a missing record.
	ErrLoadFailed = errors.New("session.load_failed")

	// ErrDecodeFailed indicates a stored blob could not be deserialized.
	// Unlike a missing record, this is an internal failure.
	ErrDecodeFailed = errors.New("session.decode_failed")

	// ErrEncodeFailed indicates the content map could not be serialized.
	ErrEncodeFailed = errors.New("session.encode_failed")

	// ErrSaveFailed indicates the backend write failed.
	ErrSaveFailed = errors.New("session.save_failed")
)
