package txn

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/letterdrop/pkg/httperr"
)

// Outcome is the explicit commit/rollback decision passed to Resolve. It is
// computed from the classified request outcome, never inferred implicitly.
type Outcome int

const (
	// Commit persists the transaction's writes.
	Commit Outcome = iota + 1
	// Rollback discards them.
	Rollback
)

func (o Outcome) String() string {
	switch o {
	case Commit:
		return "commit"
	case Rollback:
		return "rollback"
	default:
		return "unknown"
	}
}

// State tracks a handle's transaction through its lifecycle. Committed and
// RolledBack are terminal.
type State int

const (
	// StateIdle means no transaction has been checked out yet.
	StateIdle State = iota
	// StateActive means a transaction is open and owned by the request.
	StateActive
	// StateCommitted and StateRolledBack are terminal.
	StateCommitted
	StateRolledBack
)

// Beginner is the slice of a connection pool the coordinator needs.
// *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Handle owns one request's database transaction. The transaction is checked
// out lazily on first use, so requests that never touch the database never
// pay for a pool checkout. A Handle must not be shared across requests.
type Handle struct {
	mu    sync.Mutex
	pool  Beginner
	tx    pgx.Tx
	state State
}

func NewHandle(pool Beginner) *Handle {
	return &Handle{pool: pool}
}

// Tx returns the request's transaction, beginning one on first call.
// Pool checkout failure is fatal for the request.
func (h *Handle) Tx(ctx context.Context) (pgx.Tx, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case StateActive:
		return h.tx, nil
	case StateIdle:
		tx, err := h.pool.Begin(ctx)
		if err != nil {
			return nil, errors.Join(ErrBeginFailed, err)
		}
		h.tx = tx
		h.state = StateActive
		return tx, nil
	default:
		return nil, ErrAlreadyResolved
	}
}

// State reports the handle's current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Resolve terminates the transaction according to the outcome. Resolving a
// handle that never began a transaction is a successful no-op; resolving an
// already-resolved handle is a programming error. A failed commit or
// rollback is surfaced, never retried.
func (h *Handle) Resolve(ctx context.Context, outcome Outcome) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case StateCommitted, StateRolledBack:
		return ErrAlreadyResolved
	case StateIdle:
		// Nothing was checked out; record the terminal state anyway so a
		// second Resolve still trips the guard above.
		if outcome == Commit {
			h.state = StateCommitted
		} else {
			h.state = StateRolledBack
		}
		return nil
	}

	switch outcome {
	case Commit:
		h.state = StateCommitted
		if err := h.tx.Commit(ctx); err != nil {
			return errors.Join(ErrCommitFailed, err)
		}
		return nil
	case Rollback:
		h.state = StateRolledBack
		if err := h.tx.Rollback(ctx); err != nil {
			return errors.Join(ErrRollbackFailed, err)
		}
		return nil
	default:
		return ErrInvalidOutcome
	}
}

// Close rolls back the transaction if the handle was never resolved. It is
// the safety net for panics, cancellations, and client disconnects: a
// transaction left active when the request finishes is never silently
// committed. Close after Resolve is a no-op.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateActive {
		return nil
	}

	h.state = StateRolledBack
	// The request context may already be canceled (client disconnect), but
	// the connection must still be released.
	if err := h.tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return errors.Join(ErrRollbackFailed, err)
	}
	return nil
}

// OutcomeFor maps a classified failure kind to the transaction outcome.
// Only internal failures roll back: validation and unauthorized outcomes
// commit, so side effects such as recorded login attempts survive a rejected
// request.
func OutcomeFor(kind httperr.Kind) Outcome {
	if kind == httperr.KindInternal {
		return Rollback
	}
	return Commit
}
