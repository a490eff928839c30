package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/flashcards-client/internal/model"
)

const defaultPrefix = "flashcards:session:"

var _ model.KeyValueStore = (*Store)(nil)

// Store keeps one session per namespace in a redis hash, which lets several
// hosts share a login. Multi-key writes and clears are single hash commands.
type Store struct {
	rdb redis.Cmdable
	key string
}

// NewStore creates a Store for namespace on top of an existing client.
func NewStore(rdb redis.Cmdable, namespace string) *Store {
	return &Store{rdb: rdb, key: defaultPrefix + namespace}
}

// Connect parses a redis URL (redis://:pass@host:6379/0) and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session value: %w", err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set session value: %w", err)
	}
	return nil
}

func (s *Store) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	args := make([]any, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, v)
	}
	if err := s.rdb.HSet(ctx, s.key, args...).Err(); err != nil {
		return fmt.Errorf("failed to set session values: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.HDel(ctx, s.key, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear session values: %w", err)
	}
	return nil
}
