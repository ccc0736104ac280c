package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railgo/railgo/internal/domain"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a booking and fills in the generated ID and timestamp.
//
// Returns:
//   - error: repository.ErrConflict on a uniqueness violation.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	const op = "postgres.BookingRepo.Create"

	db := r.handle()

	b.ID = uuid.New()

	if err := db.QueryRow(ctx,
		`INSERT INTO bookings(id, user_email, train_id, seats, total_cents, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		b.ID, b.UserEmail, b.TrainID, b.Seats, b.TotalCents, b.Status,
	).Scan(&b.CreatedAt); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// ListByUser retrieves all bookings owned by email, each joined with its
// train, most recent first.
func (r *BookingRepo) ListByUser(ctx context.Context, email string) ([]domain.BookingWithTrain, error) {
	const op = "postgres.BookingRepo.ListByUser"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT b.id, b.user_email, b.train_id, b.seats, b.total_cents, b.status, b.created_at,
				t.id, t.departure_city, t.arrival_city, t.departure_date, t.departure_hour,
				t.price_cents, t.remaining_seats
		 FROM bookings b
		 JOIN trains t ON t.id = b.train_id
		 WHERE b.user_email = $1
		 ORDER BY b.created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.BookingWithTrain
	for rows.Next() {
		var bt domain.BookingWithTrain
		if err := rows.Scan(
			&bt.ID,
			&bt.UserEmail,
			&bt.TrainID,
			&bt.Seats,
			&bt.TotalCents,
			&bt.Status,
			&bt.CreatedAt,
			&bt.Train.ID,
			&bt.Train.DepartureCity,
			&bt.Train.ArrivalCity,
			&bt.Train.DepartureDate,
			&bt.Train.DepartureHour,
			&bt.Train.PriceCents,
			&bt.Train.RemainingSeats,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, bt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Get retrieves a booking with its train.
//
// Returns:
//   - *domain.BookingWithTrain: the booking when found.
//   - error: repository.ErrNotFound if the booking does not exist.
func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.BookingWithTrain, error) {
	const op = "postgres.BookingRepo.Get"

	db := r.handle()

	var bt domain.BookingWithTrain
	err := db.QueryRow(ctx,
		`SELECT b.id, b.user_email, b.train_id, b.seats, b.total_cents, b.status, b.created_at,
				t.id, t.departure_city, t.arrival_city, t.departure_date, t.departure_hour,
				t.price_cents, t.remaining_seats
		 FROM bookings b
		 JOIN trains t ON t.id = b.train_id
		 WHERE b.id = $1`,
		id,
	).Scan(
		&bt.ID,
		&bt.UserEmail,
		&bt.TrainID,
		&bt.Seats,
		&bt.TotalCents,
		&bt.Status,
		&bt.CreatedAt,
		&bt.Train.ID,
		&bt.Train.DepartureCity,
		&bt.Train.ArrivalCity,
		&bt.Train.DepartureDate,
		&bt.Train.DepartureHour,
		&bt.Train.PriceCents,
		&bt.Train.RemainingSeats,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &bt, nil
}
