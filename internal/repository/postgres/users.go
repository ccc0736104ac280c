package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railgo/railgo/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) With(db DB) *UserRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a user and fills in the creation timestamp.
//
// Returns:
//   - error: repository.ErrConflict if the email is already registered.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	const op = "postgres.UserRepo.Create"

	db := r.handle()

	if err := db.QueryRow(ctx,
		`INSERT INTO users(email, password_hash, account_number)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		u.Email, u.PasswordHash, u.AccountNumber,
	).Scan(&u.CreatedAt); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// GetByEmail retrieves a user by email.
//
// Returns:
//   - *domain.User: the user when found.
//   - error: repository.ErrNotFound if no user has that email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "postgres.UserRepo.GetByEmail"

	db := r.handle()

	var u domain.User
	err := db.QueryRow(ctx,
		`SELECT email, password_hash, account_number, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.Email, &u.PasswordHash, &u.AccountNumber, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &u, nil
}
