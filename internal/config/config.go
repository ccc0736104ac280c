package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Host       string
	Port       int
	AdminToken string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

type AuthConfig struct {
	SessionTTL time.Duration
	BcryptCost int
}

type BookingConfig struct {
	RateLimit       int
	RateLimitWindow time.Duration
	IdempotencyTTL  time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host:       serverHost,
		Port:       serverPort,
		AdminToken: os.Getenv("ADMIN_TOKEN"),
	}

	postgresHost := os.Getenv("POSTGRES_HOST")
	if postgresHost == "" {
		postgresHost = "localhost"
	}

	postgresPortStr := os.Getenv("POSTGRES_PORT")
	if postgresPortStr == "" {
		postgresPortStr = "5432"
	}

	postgresPort, err := strconv.Atoi(postgresPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid POSTGRES_PORT: %w", op, err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	postgresSSLMode := os.Getenv("POSTGRES_SSLMODE")
	if postgresSSLMode == "" {
		postgresSSLMode = "disable"
	}

	postgresCfg := PostgresConfig{
		User:     postgresUser,
		Password: postgresPassword,
		Name:     postgresDB,
		Host:     postgresHost,
		Port:     postgresPort,
		SSLMode:  postgresSSLMode,
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisCfg := RedisConfig{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	}

	sessionTTL := 24 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		sessionTTL, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid SESSION_TTL: %w", op, err)
		}
	}

	bcryptCost := 10
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		bcryptCost, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid BCRYPT_COST: %w", op, err)
		}
	}

	authCfg := AuthConfig{
		SessionTTL: sessionTTL,
		BcryptCost: bcryptCost,
	}

	rateLimit := 10
	if v := os.Getenv("BOOKING_RATE_LIMIT"); v != "" {
		rateLimit, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid BOOKING_RATE_LIMIT: %w", op, err)
		}
	}

	bookingCfg := BookingConfig{
		RateLimit:       rateLimit,
		RateLimitWindow: 1 * time.Minute,
		IdempotencyTTL:  2 * time.Hour,
	}

	return &Config{
		Server:   serverCfg,
		Postgres: postgresCfg,
		Redis:    redisCfg,
		Auth:     authCfg,
		Booking:  bookingCfg,
	}, nil
}

// DSN renders the pgx connection string for the configured database.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
	)
}
