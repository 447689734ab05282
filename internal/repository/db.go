package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use. Narrowing the
// dependency lets tests substitute a pgxmock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

var (
	// ErrDuplicateUsername reports a unique-constraint violation on users.username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateTransaction reports a unique-constraint violation on
	// orders.transaction_id. Order ingestion folds this into its
	// idempotent already-exists path.
	ErrDuplicateTransaction = errors.New("order with this transaction id already exists")
)

// uniqueViolation is the Postgres error code for a unique-constraint violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
