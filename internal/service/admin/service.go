package admin

import (
	"context"
	"fmt"

	"github.com/railgo/railgo/internal/domain"
	postgresrepo "github.com/railgo/railgo/internal/repository/postgres"
	redisrepo "github.com/railgo/railgo/internal/repository/redis"
	"github.com/railgo/railgo/internal/uow"
)

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.TrainsPubSub
	uow    *uow.UoW
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, pubsub *redisrepo.TrainsPubSub) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
	}
}

// CreateTrain creates a train record and returns its ID.
//
// Returns:
//   - int64: the created train ID on success.
//   - error: admin.ErrInvalidTrain if required fields are missing or out of
//     range.
func (s *Service) CreateTrain(ctx context.Context, t domain.Train) (int64, error) {
	const op = "service.admin.CreateTrain"

	if err := validateTrain(t); err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Trains().With(tx).Create(ctx, t)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.pubsub.PublishTrainChanged(ctx, id)
		})
		return nil
	})

	return id, err
}

// BatchCreateTrains inserts multiple trains within a transactional Unit of
// Work. Used by the seeder and the admin batch endpoint.
func (s *Service) BatchCreateTrains(ctx context.Context, trains []domain.Train) error {
	const op = "service.admin.BatchCreateTrains"

	for _, t := range trains {
		if err := validateTrain(t); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Trains().With(tx).BatchCreate(ctx, trains); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		return nil
	})

	return err
}

func validateTrain(t domain.Train) error {
	if t.DepartureCity == "" || t.ArrivalCity == "" {
		return ErrInvalidTrain
	}
	if t.PriceCents <= 0 || t.RemainingSeats < 0 {
		return ErrInvalidTrain
	}
	if t.DepartureDate.IsZero() {
		return ErrInvalidTrain
	}
	return nil
}
