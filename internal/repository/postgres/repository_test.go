package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration tests run against a real database when RAILGO_TEST_DB_DSN is
// set (a throwaway database with migrations applied); they are skipped
// otherwise.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	code, err := run(m)
	if err != nil {
		fmt.Println(err)
	}
	os.Exit(code)
}

func run(m *testing.M) (int, error) {
	dsn := os.Getenv("RAILGO_TEST_DB_DSN")
	if dsn != "" {
		pool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			return -1, fmt.Errorf("could not connect to database: %w", err)
		}
		defer pool.Close()
		testPool = pool
	}

	return m.Run(), nil
}

func testStore(t *testing.T) *Store {
	t.Helper()
	if testPool == nil {
		t.Skip("RAILGO_TEST_DB_DSN not set")
	}
	return NewStore(testPool)
}
