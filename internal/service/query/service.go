package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/railgo/railgo/internal/domain"
	"github.com/railgo/railgo/internal/repository"
	postgresrepo "github.com/railgo/railgo/internal/repository/postgres"
	redisrepo "github.com/railgo/railgo/internal/repository/redis"
)

type Config struct {
	TrainSummaryTTL time.Duration
	AvailabilityTTL time.Duration
	SearchTTL       time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.TrainSummaryTTL <= 0 {
		cfg.TrainSummaryTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 5 * time.Second
	}

	if cfg.SearchTTL <= 0 {
		cfg.SearchTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// Search lists trains between two cities, optionally restricted to a single
// calendar day, ordered by ascending departure date. Results are cached
// briefly; staleness is bounded by the search TTL.
func (s *Service) Search(
	ctx context.Context,
	departureCity, arrivalCity string,
	day *time.Time,
) ([]domain.Train, error) {
	const op = "service.query.Search"

	key := redisrepo.KeySearch(departureCity, arrivalCity, day)

	trains, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.SearchTTL,
		func(ctx context.Context) ([]domain.Train, error) {
			return s.store.Trains().Search(ctx, departureCity, arrivalCity, day)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return trains, nil
}

// GetTrain retrieves a train by its ID, utilizing a caching layer.
//
// Returns:
//   - *domain.Train: the retrieved train, or nil if not found.
//   - error: query.ErrTrainNotFound if the train is not found.
func (s *Service) GetTrain(ctx context.Context, id int64) (*domain.Train, error) {
	const op = "service.query.GetTrain"

	key := redisrepo.KeyTrainSummary(id)

	train, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.TrainSummaryTTL,
		func(ctx context.Context) (domain.Train, error) {
			t, err := s.store.Trains().Get(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Train{}, ErrTrainNotFound
				}

				return domain.Train{}, err
			}

			return *t, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &train, nil
}

// Availability reports the remaining seats of a train with a very short
// cache TTL, so the counter shown to browsing users lags at most a few
// seconds behind bookings.
func (s *Service) Availability(ctx context.Context, trainID int64) (*domain.TrainAvailability, error) {
	const op = "service.query.Availability"

	key := redisrepo.KeyTrainAvailability(trainID)

	avail, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.AvailabilityTTL,
		func(ctx context.Context) (domain.TrainAvailability, error) {
			t, err := s.store.Trains().Get(ctx, trainID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.TrainAvailability{}, ErrTrainNotFound
				}

				return domain.TrainAvailability{}, err
			}

			return domain.TrainAvailability{
				TrainID:        t.ID,
				RemainingSeats: t.RemainingSeats,
			}, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &avail, nil
}
