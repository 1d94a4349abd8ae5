package implementation

import (
	"context"
	"errors"
	"fmt"

	"prep-tool-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type RedisViewerStateRepository struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisViewerStateRepository(rdb *redis.Client) contract.ViewerStateRepository {
	return &RedisViewerStateRepository{
		rdb:    rdb,
		prefix: "prep:viewer",
	}
}

func (r *RedisViewerStateRepository) key(viewerId, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, viewerId, key)
}

func (r *RedisViewerStateRepository) Get(ctx context.Context, viewerId, key string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, r.key(viewerId, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisViewerStateRepository) Set(ctx context.Context, viewerId, key, value string) error {
	return r.rdb.Set(ctx, r.key(viewerId, key), value, 0).Err()
}

func (r *RedisViewerStateRepository) Delete(ctx context.Context, viewerId, key string) error {
	return r.rdb.Del(ctx, r.key(viewerId, key)).Err()
}
