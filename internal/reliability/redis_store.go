// Package reliability – RedisStore
//
// This file implements Store on top of Redis so reliability statistics can
// be shared by multiple back-office instances. Values are stored as JSON and
// expiry is delegated to Redis key TTLs.
package reliability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

// RedisStore is a Store backed by a Redis server. Safe for concurrent use.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Get fetches and decodes the statistic stored under key. A missing key is a
// miss, not an error; a present but undecodable value is an error (the Cache
// degrades it to a miss).
func (s *RedisStore) Get(ctx context.Context, key string) (domain.SuccessRate, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return domain.SuccessRate{}, false, nil
	}
	if err != nil {
		return domain.SuccessRate{}, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	var value domain.SuccessRate
	if err := json.Unmarshal(raw, &value); err != nil {
		return domain.SuccessRate{}, false, fmt.Errorf("decode cached statistic %q: %w", key, err)
	}
	return value, true, nil
}

// Set encodes value as JSON and stores it under key with the given ttl.
func (s *RedisStore) Set(ctx context.Context, key string, value domain.SuccessRate, ttl time.Duration) error {
	if ttl <= 0 {
		return s.client.Del(ctx, key).Err()
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode statistic for %q: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }
