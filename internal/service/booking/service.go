package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/railgo/railgo/internal/domain"
	"github.com/railgo/railgo/internal/repository"
	postgresrepo "github.com/railgo/railgo/internal/repository/postgres"
	redisrepo "github.com/railgo/railgo/internal/repository/redis"
	"github.com/railgo/railgo/internal/uow"
)

type Config struct {
	// MaxTxAttempts bounds retries of the booking transaction on
	// serialization failures.
	MaxTxAttempts int
}

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisrepo.TrainsPubSub
	limiter *redisrepo.SlidingWindowLimiter
	uow     *uow.UoW
	cfg     Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.TrainsPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Service {
	if cfg.MaxTxAttempts <= 0 {
		cfg.MaxTxAttempts = 3
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
	}
}

// Create books seats on a train for the authenticated caller.
//
// The availability check, seat decrement and booking insert run in one
// serializable transaction: the decrement is conditional on enough seats
// remaining at commit time, so two racing requests can never oversubscribe
// the train. The total is recomputed server-side from the persisted unit
// price.
//
// Parameters:
//   - ctx: request-scoped context.
//   - ident: authenticated caller identity.
//   - trainID: ID of the train to book.
//   - seats: number of seats requested, at least 1.
//   - opts: add-ons and optional member account number, priced server-side.
//   - rlKey: rate-limit key for the caller, empty to skip limiting.
//
// Returns:
//   - *domain.Booking: the created booking.
//   - error: booking.ErrInvalidSeats if seats < 1.
//   - error: booking.ErrTrainNotFound if the train does not exist.
//   - error: booking.ErrInsufficientSeats if fewer seats remain than requested.
//   - error: booking.ErrRateLimited if the caller exceeded the rate limit.
func (s *Service) Create(
	ctx context.Context,
	ident domain.Identity,
	trainID int64,
	seats int,
	opts domain.BookingOptions,
	rlKey string,
) (*domain.Booking, error) {
	const op = "service.booking.Create"

	if seats < 1 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidSeats)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s:%w, retry in %s", op, ErrRateLimited, retry)
		}
	}

	var booked *domain.Booking

	var err error
	for attempt := 0; attempt < s.cfg.MaxTxAttempts; attempt++ {
		booked, err = s.createOnce(ctx, ident, trainID, seats, opts)
		if err == nil || !postgresrepo.IsRetryable(err) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return booked, nil
}

func (s *Service) createOnce(
	ctx context.Context,
	ident domain.Identity,
	trainID int64,
	seats int,
	opts domain.BookingOptions,
) (*domain.Booking, error) {
	const op = "service.booking.createOnce"

	var booked *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		train, err := s.store.Trains().With(tx).Get(ctx, trainID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTrainNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		if err := s.store.Trains().With(tx).ReserveSeats(ctx, trainID, seats); err != nil {
			if errors.Is(err, repository.ErrInsufficientSeats) {
				return fmt.Errorf("%s:%w", op, ErrInsufficientSeats)
			}

			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTrainNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		b := &domain.Booking{
			UserEmail:  ident.Email,
			TrainID:    trainID,
			Seats:      seats,
			TotalCents: ComputeTotalCents(train.PriceCents, seats, opts),
			Status:     domain.BookingConfirmed,
		}

		if err := s.store.Bookings().With(tx).Create(ctx, b); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		booked = b

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateTrain(ctx, trainID)
			_ = s.pubsub.PublishTrainChanged(ctx, trainID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booked, nil
}

// ListByUser returns all bookings owned by the caller, each joined with its
// train, most recent first.
func (s *Service) ListByUser(ctx context.Context, email string) ([]domain.BookingWithTrain, error) {
	const op = "service.booking.ListByUser"

	out, err := s.store.Bookings().ListByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// GetByID retrieves one of the caller's bookings. Bookings owned by other
// users are reported as not found.
//
// Returns:
//   - *domain.BookingWithTrain: the booking when found and owned by email.
//   - error: booking.ErrBookingNotFound otherwise.
func (s *Service) GetByID(ctx context.Context, email string, id uuid.UUID) (*domain.BookingWithTrain, error) {
	const op = "service.booking.GetByID"

	bt, err := s.store.Bookings().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if bt.UserEmail != email {
		return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
	}

	return bt, nil
}
