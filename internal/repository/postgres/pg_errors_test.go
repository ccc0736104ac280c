package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/railgo/railgo/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestTranslateDBErrNoRows(t *testing.T) {
	err := translateDBErr(pgx.ErrNoRows)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTranslateDBErrUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	err := translateDBErr(fmt.Errorf("insert: %w", pgErr))
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestTranslateDBErrCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514"}
	err := translateDBErr(pgErr)
	assert.ErrorIs(t, err, repository.ErrInsufficientSeats)
}

func TestTranslateDBErrPassthrough(t *testing.T) {
	orig := errors.New("connection refused")
	assert.Equal(t, orig, translateDBErr(orig))
	assert.NoError(t, translateDBErr(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, IsRetryable(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40001"})))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("boom")))
}
