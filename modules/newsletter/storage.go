package newsletter

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type subscriberRow struct {
	ID    uuid.UUID
	Email string
}

// confirmedSubscribers returns every confirmed subscriber row unfiltered;
// the caller decides what to do with rows whose stored email no longer
// passes validation.
func confirmedSubscribers(ctx context.Context, db dbtx) ([]subscriberRow, error) {
	rows, err := db.Query(ctx,
		`SELECT id, email FROM subscriptions WHERE status = 'confirmed'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []subscriberRow
	for rows.Next() {
		var row subscriberRow
		if err := rows.Scan(&row.ID, &row.Email); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
