package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisCacheRepositoryImpl struct {
	client redis.Cmdable
}

func CreateNewRedisCacheRepository(client redis.Cmdable) CacheRepository {
	return &RedisCacheRepositoryImpl{client: client}
}

func (r *RedisCacheRepositoryImpl) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	value, err = r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "CacheGet").Str("key", key).Msg("")
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores value without expiry.
func (r *RedisCacheRepositoryImpl) Set(ctx context.Context, key string, value []byte) (err error) {
	if err = r.client.Set(ctx, key, value, 0).Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CacheSet").Str("key", key).Msg("")
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}

	return nil
}
