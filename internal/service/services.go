package service

import (
	postgres "github.com/railgo/railgo/internal/repository/postgres"
	redis "github.com/railgo/railgo/internal/repository/redis"
	"github.com/railgo/railgo/internal/service/admin"
	"github.com/railgo/railgo/internal/service/auth"
	"github.com/railgo/railgo/internal/service/booking"
	"github.com/railgo/railgo/internal/service/query"
)

type Services struct {
	Auth    *auth.Service
	Booking *booking.Service
	Query   *query.Service
	Admin   *admin.Service
}

type Config struct {
	Auth    auth.Config
	Booking booking.Config
	Query   query.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redis.TrainsPubSub,
	limiter *redis.SlidingWindowLimiter,
	sessions *redis.SessionStore,
	cfg Config,
) *Services {
	return &Services{
		Auth:    auth.New(store, sessions, cfg.Auth),
		Booking: booking.New(store, cache, pubsub, limiter, cfg.Booking),
		Query:   query.New(store, cache, cfg.Query),
		Admin:   admin.New(store, cache, pubsub),
	}
}
