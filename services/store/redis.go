package store

import (
	"context"

	"github.com/redis/go-redis/v9"

	"estate-crawler/pkg/errors"
)

// scanBatch is the COUNT hint for incremental SCAN iteration.
const scanBatch = 500

// RedisStore implements Store using Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed store
func NewRedisStore(addr string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

// Put writes a value without expiration, overwriting any prior value
func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.NewStore("redis", "failed to set key "+key, err)
	}
	return nil
}

// Get retrieves a value; a missing key yields (nil, nil)
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewStore("redis", "failed to get key "+key, err)
	}
	return value, nil
}

// Scan iterates keys under prefix using cursor-based SCAN
func (s *RedisStore) Scan(ctx context.Context, prefix string, fn func(key string) error) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		if err := fn(iter.Val()); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return errors.NewStore("redis", "scan failed for prefix "+prefix, err)
	}
	return nil
}

// DeleteAll removes every key under prefix
func (s *RedisStore) DeleteAll(ctx context.Context, prefix string) error {
	batch := make([]string, 0, scanBatch)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return errors.NewStore("redis", "failed to delete keys under "+prefix, err)
		}
		batch = batch[:0]
		return nil
	}

	err := s.Scan(ctx, prefix, func(key string) error {
		batch = append(batch, key)
		if len(batch) >= scanBatch {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
