package rewards

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const ledgerKeyPrefix = "rewards:ledger:"

// RedisStore keeps each ledger as a single JSON value in Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userKey string) ([]byte, error) {
	raw, err := s.client.Get(ctx, ledgerKeyPrefix+userKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

func (s *RedisStore) Set(ctx context.Context, userKey string, value []byte) error {
	return s.client.Set(ctx, ledgerKeyPrefix+userKey, value, 0).Err()
}
