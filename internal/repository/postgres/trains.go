package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railgo/railgo/internal/domain"
	"github.com/railgo/railgo/internal/repository"
)

type TrainRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TrainRepo) With(db DB) *TrainRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TrainRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Get retrieves a train by its ID.
//
// Returns:
//   - *domain.Train: the train when found.
//   - error: repository.ErrNotFound if the train does not exist.
func (r *TrainRepo) Get(ctx context.Context, id int64) (*domain.Train, error) {
	const op = "postgres.TrainRepo.Get"

	db := r.handle()

	var t domain.Train
	err := db.QueryRow(ctx,
		`SELECT id, departure_city, arrival_city, departure_date, departure_hour,
				price_cents, remaining_seats
		 FROM trains WHERE id = $1`,
		id,
	).Scan(
		&t.ID,
		&t.DepartureCity,
		&t.ArrivalCity,
		&t.DepartureDate,
		&t.DepartureHour,
		&t.PriceCents,
		&t.RemainingSeats,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &t, nil
}

// Search lists trains matching the city pair exactly. When day is non-nil,
// only trains departing within the calendar day [day, day+24h) are returned.
// Results are ordered by ascending departure date.
func (r *TrainRepo) Search(
	ctx context.Context,
	departureCity, arrivalCity string,
	day *time.Time,
) ([]domain.Train, error) {
	const op = "postgres.TrainRepo.Search"

	db := r.handle()

	var rows pgx.Rows
	var err error

	if day != nil {
		from := day.Truncate(24 * time.Hour)
		to := from.Add(24 * time.Hour)
		rows, err = db.Query(ctx,
			`SELECT id, departure_city, arrival_city, departure_date, departure_hour,
					price_cents, remaining_seats
			 FROM trains
			 WHERE departure_city = $1
			   AND arrival_city = $2
			   AND departure_date >= $3
			   AND departure_date < $4
			 ORDER BY departure_date`,
			departureCity, arrivalCity, from, to,
		)
	} else {
		rows, err = db.Query(ctx,
			`SELECT id, departure_city, arrival_city, departure_date, departure_hour,
					price_cents, remaining_seats
			 FROM trains
			 WHERE departure_city = $1
			   AND arrival_city = $2
			 ORDER BY departure_date`,
			departureCity, arrivalCity,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Train
	for rows.Next() {
		var t domain.Train
		if err := rows.Scan(
			&t.ID,
			&t.DepartureCity,
			&t.ArrivalCity,
			&t.DepartureDate,
			&t.DepartureHour,
			&t.PriceCents,
			&t.RemainingSeats,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ReserveSeats decrements remaining_seats by seats, but only when enough
// capacity is left at commit time. The conditional update is what keeps two
// racing bookings from oversubscribing the train.
//
// Returns:
//   - error: repository.ErrInsufficientSeats if the train exists but has
//     fewer than seats remaining.
//   - error: repository.ErrNotFound if the train does not exist.
func (r *TrainRepo) ReserveSeats(ctx context.Context, id int64, seats int) error {
	const op = "postgres.TrainRepo.ReserveSeats"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE trains
		 SET remaining_seats = remaining_seats - $2
		 WHERE id = $1 AND remaining_seats >= $2`,
		id, seats,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM trains WHERE id = $1)`,
			id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		if !exists {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		return fmt.Errorf("%s:%w", op, repository.ErrInsufficientSeats)
	}

	return nil
}

// Create inserts a train and returns its generated ID.
func (r *TrainRepo) Create(ctx context.Context, t domain.Train) (int64, error) {
	const op = "postgres.TrainRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO trains(departure_city, arrival_city, departure_date,
							departure_hour, price_cents, remaining_seats)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		t.DepartureCity,
		t.ArrivalCity,
		t.DepartureDate,
		t.DepartureHour,
		t.PriceCents,
		t.RemainingSeats,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// BatchCreate inserts multiple trains in a single round trip.
func (r *TrainRepo) BatchCreate(ctx context.Context, trains []domain.Train) error {
	const op = "postgres.TrainRepo.BatchCreate"

	db := r.handle()

	batch := &pgx.Batch{}
	for _, t := range trains {
		batch.Queue(
			`INSERT INTO trains(departure_city, arrival_city, departure_date,
								departure_hour, price_cents, remaining_seats)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			t.DepartureCity,
			t.ArrivalCity,
			t.DepartureDate,
			t.DepartureHour,
			t.PriceCents,
			t.RemainingSeats,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}
