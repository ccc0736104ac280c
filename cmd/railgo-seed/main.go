// Command railgo-seed loads demo users and a batch of random trains into the
// configured database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/railgo/railgo/internal/config"
	"github.com/railgo/railgo/internal/domain"
	"github.com/railgo/railgo/internal/postgres"
	postgresrepo "github.com/railgo/railgo/internal/repository/postgres"
	"golang.org/x/crypto/bcrypt"
)

var cities = []string{
	"Paris",
	"Lyon",
	"Marseille",
	"Toulouse",
	"Bordeaux",
	"Lille",
	"Nantes",
	"Strasbourg",
	"Nice",
	"Montpellier",
}

const trainCount = 15

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(context.Background(), logger); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding done")
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := postgres.New(ctx, postgres.Config{DSN: cfg.Postgres.DSN()})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	store := postgresrepo.NewStore(pool)

	logger.Info("seeding users")
	if err := seedUsers(ctx, store, cfg.Auth.BcryptCost); err != nil {
		return err
	}

	logger.Info("seeding trains", "count", trainCount)
	return store.Trains().BatchCreate(ctx, randomTrains(trainCount))
}

func seedUsers(ctx context.Context, store *postgresrepo.Store, bcryptCost int) error {
	demo := []struct {
		email, password, account string
	}{
		{"alice@example.com", "password-alice", "ACC1001"},
		{"bob@example.com", "password-bob", "ACC1002"},
		{"charlie@example.com", "password-charlie", "ACC1003"},
	}

	for _, d := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", d.email, err)
		}

		u := &domain.User{
			Email:         d.email,
			PasswordHash:  string(hash),
			AccountNumber: d.account,
		}
		if err := store.Users().Create(ctx, u); err != nil {
			return fmt.Errorf("create user %s: %w", d.email, err)
		}
	}

	return nil
}

func randomTrains(n int) []domain.Train {
	trains := make([]domain.Train, 0, n)
	for i := 0; i < n; i++ {
		from, to := randomCityPair()
		trains = append(trains, domain.Train{
			DepartureCity:  from,
			ArrivalCity:    to,
			DepartureDate:  time.Now().Truncate(24 * time.Hour).AddDate(0, 0, rand.IntN(20)),
			DepartureHour:  randomHour(),
			PriceCents:     2000 + int64(rand.IntN(8000)),
			RemainingSeats: 10 + rand.IntN(90),
		})
	}
	return trains
}

func randomCityPair() (string, string) {
	from := cities[rand.IntN(len(cities))]
	to := cities[rand.IntN(len(cities))]
	for to == from {
		to = cities[rand.IntN(len(cities))]
	}
	return from, to
}

func randomHour() string {
	minutes := "00"
	if rand.IntN(2) == 1 {
		minutes = "30"
	}
	return fmt.Sprintf("%02d:%s", rand.IntN(24), minutes)
}
