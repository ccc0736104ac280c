package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/railgo/railgo/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps opaque bearer tokens mapped to the identity they were
// issued for. Tokens expire server-side after ttl.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, token string, ident domain.Identity) error {
	b, err := json.Marshal(ident)
	if err != nil {
		return err
	}

	return s.rdb.Set(ctx, KeySession(token), b, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, token string) (domain.Identity, bool, error) {
	v, err := s.rdb.Get(ctx, KeySession(token)).Result()
	if err == redis.Nil {
		return domain.Identity{}, false, nil
	}
	if err != nil {
		return domain.Identity{}, false, err
	}

	var ident domain.Identity
	if err := json.Unmarshal([]byte(v), &ident); err != nil {
		return domain.Identity{}, false, err
	}

	return ident, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, KeySession(token)).Err()
}
