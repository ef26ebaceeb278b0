// Package auth provides credential validation with a constant-time
// structure for HTTP basic authentication.
//
// Passwords are hashed with Argon2id and stored in PHC string format.
// Validation always performs exactly one database lookup and exactly one
// hash verification, whether or not the username exists; a fixed
// placeholder hash stands in for missing users so the two paths are not
// distinguishable by timing. All credential failures collapse into a
// single ErrUnauthorized with no detail about which check failed.
//
// Hash verification is CPU-bound, so it is delegated to a bounded worker
// pool (Verifier) instead of running on the request goroutine. A failure
// to delegate is an internal failure, never an authentication failure.
package auth
