package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/railgo/railgo/internal/repository"
)

// IsRetryable reports whether err is a transient serialization or deadlock
// failure that is safe to retry with a fresh transaction.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return true
		}
	}

	return false
}

func translateDBErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		switch pge.Code {
		// unique_violation
		case "23505":
			return repository.ErrConflict
		// check_violation: the remaining_seats >= 0 constraint is the last
		// line of defense when a decrement races past the conditional guard
		case "23514":
			return repository.ErrInsufficientSeats
		}
	}

	return err
}
