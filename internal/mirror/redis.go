package mirror

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "wellness:slot:"

// RedisBackend stores slots as plain string keys. Values never expire: the
// mirror models per-browser persistent storage, not a cache.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Get(ctx context.Context, slot string) ([]byte, error) {
	raw, err := b.client.Get(ctx, redisKeyPrefix+slot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (b *RedisBackend) Put(ctx context.Context, slot string, data []byte) error {
	return b.client.Set(ctx, redisKeyPrefix+slot, data, 0).Err()
}
