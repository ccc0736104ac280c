package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/railgo/railgo/internal/domain"
	"github.com/railgo/railgo/internal/repository"
	postgresrepo "github.com/railgo/railgo/internal/repository/postgres"
	redisrepo "github.com/railgo/railgo/internal/repository/redis"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	BcryptCost int
}

type Service struct {
	store    *postgresrepo.Store
	sessions *redisrepo.SessionStore
	cfg      Config
}

func New(store *postgresrepo.Store, sessions *redisrepo.SessionStore, cfg Config) *Service {
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		store:    store,
		sessions: sessions,
		cfg:      cfg,
	}
}

// Register creates a user with a bcrypt-hashed password and a generated
// account number.
//
// Returns:
//   - *domain.User: the created user.
//   - error: auth.ErrValidation if email or password is missing/malformed.
//   - error: auth.ErrEmailTaken if the email is already registered.
func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, error) {
	const op = "service.auth.Register"

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%s:%w", op, ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	u := &domain.User{
		Email:         email,
		PasswordHash:  string(hash),
		AccountNumber: GenerateAccountNumber(),
	}

	if err := s.store.Users().Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, ErrEmailTaken)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return u, nil
}

// Login verifies the credentials and issues an opaque session token kept
// server-side with a TTL.
//
// Returns:
//   - string: the session token.
//   - *domain.User: the authenticated user.
//   - error: auth.ErrInvalidCredentials on a wrong email or password.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	const op = "service.auth.Login"

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%s:%w", op, ErrValidation)
	}

	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
		}

		return "", nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
	}

	token := GenerateToken()

	if err := s.sessions.Save(ctx, token, domain.Identity{
		Email:         u.Email,
		AccountNumber: u.AccountNumber,
	}); err != nil {
		return "", nil, fmt.Errorf("%s:%w", op, err)
	}

	return token, u, nil
}

// Authenticate resolves a session token to the identity it was issued for.
//
// Returns:
//   - domain.Identity: the caller identity.
//   - error: auth.ErrUnauthenticated if the token is missing, unknown or
//     expired.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	const op = "service.auth.Authenticate"

	if token == "" {
		return domain.Identity{}, fmt.Errorf("%s:%w", op, ErrUnauthenticated)
	}

	ident, ok, err := s.sessions.Get(ctx, token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s:%w", op, err)
	}

	if !ok {
		return domain.Identity{}, fmt.Errorf("%s:%w", op, ErrUnauthenticated)
	}

	return ident, nil
}

// Logout discards the session token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	const op = "service.auth.Logout"

	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// GenerateAccountNumber returns an "ACC" + 4 digit account number in the
// 1000-9999 range.
func GenerateAccountNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}

	return fmt.Sprintf("ACC%d", 1000+n.Int64())
}

// GenerateToken returns a 256-bit random hex session token.
func GenerateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return hex.EncodeToString(b)
}
