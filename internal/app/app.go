package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railgo/railgo/internal/config"
	"github.com/railgo/railgo/internal/postgres"
	"github.com/railgo/railgo/internal/redis"
	postgresrepo "github.com/railgo/railgo/internal/repository/postgres"
	redisrepo "github.com/railgo/railgo/internal/repository/redis"
	"github.com/railgo/railgo/internal/service"
	"github.com/railgo/railgo/internal/service/auth"
	"github.com/railgo/railgo/internal/service/booking"
	httpgin "github.com/railgo/railgo/internal/transport/http/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: cfg.Postgres.DSN()})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewTrainsPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(
		rdb,
		"rl",
		cfg.Booking.RateLimit,
		cfg.Booking.RateLimitWindow,
	)
	sessions := redisrepo.NewSessionStore(rdb, cfg.Auth.SessionTTL)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, cfg.Booking.IdempotencyTTL)

	// Initialize services
	services := service.NewServices(store, cache, pubsub, limiter, sessions, service.Config{
		Auth:    auth.Config{BcryptCost: cfg.Auth.BcryptCost},
		Booking: booking.Config{},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(
		services,
		idempotencyStore,
		httpgin.RouterConfig{AdminToken: cfg.Server.AdminToken},
		logger,
	)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
