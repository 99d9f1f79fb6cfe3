package repository

import (
	"context"
	"errors"
	"fmt"

	"betbook/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryable abstracts query execution over a pool or a transaction, so the
// same repository code runs inside and outside a unit of work.
type Queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// markConflict tags Postgres serialization failures, deadlocks and lock
// timeouts as entities.ErrConflict so callers can tell a retryable race from
// any other database failure. Other errors pass through unchanged.
func markConflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03": // lock_not_available
			return fmt.Errorf("%w: %s", entities.ErrConflict, pgErr.Message)
		}
	}
	return err
}
