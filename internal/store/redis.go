package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cache gateway with a Redis instance; Redis expiry does
// the TTL work. It satisfies cache.Store.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig holds the connection settings.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

var errEmptyRedisAddress = errors.New("redis address is required")

const redisConnectTimeout = 5 * time.Second

// OpenRedis connects and verifies the instance is reachable.
func OpenRedis(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Address == "" {
		return nil, errEmptyRedisAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// DeleteByPrefix scans for matching keys and deletes them in batches.
func (s *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	deleted := 0

	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var batch []string
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.client.Del(ctx, batch...).Result()
		deleted += int(n)
		batch = batch[:0]
		return err
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	if err := flush(); err != nil {
		return deleted, err
	}

	return deleted, nil
}

func (s *RedisStore) ExpiresAt(ctx context.Context, key string) (time.Time, bool, error) {
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return time.Time{}, false, err
	}
	// -2: key does not exist; -1: exists without expiry (treat as absent,
	// the gateway always sets a TTL).
	if ttl < 0 {
		return time.Time{}, false, nil
	}
	return time.Now().Add(ttl), true, nil
}
