package cart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Store persists carts by session id.
type Store interface {
	Load(ctx context.Context, session string) (*Cart, error)
	Save(ctx context.Context, session string, c *Cart) error
	Delete(ctx context.Context, session string) error
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func cartKey(session string) string {
	return fmt.Sprintf("cart:%s", session)
}

// Load returns the stored cart, or an empty one when nothing usable is stored.
func (s *RedisStore) Load(ctx context.Context, session string) (*Cart, error) {
	data, err := s.rdb.Get(ctx, cartKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	c := Decode(data)
	if c.Count() == 0 && len(data) > 2 {
		logger.Warn().Str("session", session).Msg("discarding unreadable cart payload")
	}
	return c, nil
}

// Save writes the full cart and refreshes its expiry.
func (s *RedisStore) Save(ctx context.Context, session string, c *Cart) error {
	data, err := c.MarshalJSON()
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(session), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, session string) error {
	return s.rdb.Del(ctx, cartKey(session)).Err()
}
