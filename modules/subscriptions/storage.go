package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/letterdrop/pkg/pg"
)

// dbtx is the slice of pgx.Tx this module uses.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func createSubscriber(ctx context.Context, db dbtx, sub NewSubscriber) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, sub.Email, sub.Name, time.Now().UTC(), statusPending,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func storeToken(ctx context.Context, db dbtx, token, subscriberID uuid.UUID) error {
	_, err := db.Exec(ctx,
		`INSERT INTO subscription_tokens (id, subscriber_id) VALUES ($1, $2)`,
		token, subscriberID,
	)
	return err
}

// subscriberIDByToken resolves a confirmation token. The second return is
// false when the token is unknown.
func subscriberIDByToken(ctx context.Context, db dbtx, token uuid.UUID) (uuid.UUID, bool, error) {
	var subscriberID uuid.UUID
	err := db.QueryRow(ctx,
		`SELECT subscriber_id FROM subscription_tokens WHERE id = $1`,
		token,
	).Scan(&subscriberID)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return subscriberID, true, nil
}

func confirmSubscriber(ctx context.Context, db dbtx, subscriberID uuid.UUID) error {
	_, err := db.Exec(ctx,
		`UPDATE subscriptions SET status = $1 WHERE id = $2`,
		statusConfirmed, subscriberID,
	)
	return err
}
