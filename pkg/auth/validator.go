package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/letterdrop/pkg/pg"
)

// placeholderHash is a valid Argon2id hash of a throwaway password. When a
// username does not exist, verification runs against this hash so the
// missing-user path performs the same work as the wrong-password path.
const placeholderHash = "$argon2id$v=19$m=15000,t=2,p=1$" +
	"gZiV/M1gPc22ElAH/Jh1Hw$CWOrkoo7oJBQ/iyh7uJ0LO2aLEfrHwTWllSAxT0zRno"

// Credentials carries a username and password pair exactly as presented
// by the client.
type Credentials struct {
	Username string
	Password string
}

// Querier is the read surface the validator needs. Both pgxpool.Pool and
// pgx.Tx satisfy it, so validation can run inside a request transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type passwordVerifier interface {
	Verify(ctx context.Context, password, hash string) (bool, error)
}

// Validator checks presented credentials against stored user records.
type Validator struct {
	verifier passwordVerifier
}

// NewValidator returns a Validator that delegates hash verification to
// verifier.
func NewValidator(verifier *Verifier) *Validator {
	return &Validator{verifier: verifier}
}

// Validate looks up the username and verifies the password, returning the
// user id on success. Exactly one query and exactly one hash verification
// run regardless of whether the user exists. Unknown username, wrong
// password, and corrupt stored hash all return ErrUnauthorized; only
// infrastructure failures (query error, verifier delegation) surface as
// distinct errors.
func (v *Validator) Validate(ctx context.Context, db Querier, creds Credentials) (uuid.UUID, error) {
	var (
		userID uuid.UUID
		hash   = placeholderHash
		known  = true
	)

	err := db.QueryRow(ctx,
		"SELECT id, password_hash FROM users WHERE username = $1",
		creds.Username,
	).Scan(&userID, &hash)
	if err != nil {
		if !pg.IsNotFoundError(err) {
			return uuid.Nil, errors.Join(ErrLookupFailed, err)
		}
		known = false
		hash = placeholderHash
	}

	match, err := v.verifier.Verify(ctx, creds.Password, hash)
	if err != nil {
		if errors.Is(err, ErrInvalidHash) || errors.Is(err, ErrIncompatibleVersion) {
			return uuid.Nil, ErrUnauthorized
		}
		return uuid.Nil, err
	}
	if !match || !known {
		return uuid.Nil, ErrUnauthorized
	}

	return userID, nil
}
