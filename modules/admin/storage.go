package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func usernameByID(ctx context.Context, db dbtx, userID uuid.UUID) (string, error) {
	var username string
	err := db.QueryRow(ctx,
		`SELECT username FROM users WHERE id = $1`,
		userID,
	).Scan(&username)
	return username, err
}
