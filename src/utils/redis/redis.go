package redis_utils

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salesboard/src/config"

	"github.com/redis/go-redis/v9"
)

// RedisHandler encapsulates the Redis client and provides utility methods.
// Keys are namespaced as <prefix>:<generation>:<key>; bumping the generation
// counter invalidates every key written before it.
type RedisHandler struct {
	client *redis.Client
	prefix string
}

// NewRedisHandler initializes a new Redis handler.
func NewRedisHandler(ctx context.Context, cfg *config.Config) (*RedisHandler, error) {
	options := &redis.Options{
		Addr:     cfg.Databases.Redis.Host + ":" + cfg.Databases.Redis.Port,
		Username: cfg.Databases.Redis.Username,
		Password: cfg.Databases.Redis.Password,
		DB:       cfg.Databases.Redis.Database,
	}
	if cfg.Databases.Redis.TLS {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisHandlerWithClient(client, cfg.Cache.Prefix), nil
}

// NewRedisHandlerWithClient wraps an existing client.
func NewRedisHandlerWithClient(client *redis.Client, prefix string) *RedisHandler {
	return &RedisHandler{client: client, prefix: prefix}
}

// GenerationKey is the counter that namespaces every cached key.
func (r *RedisHandler) GenerationKey() string {
	return r.prefix + ":gen"
}

// Key returns the physical Redis key for key under generation gen.
func (r *RedisHandler) Key(gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", r.prefix, gen, key)
}

// Generation returns the current cache generation; zero when none was recorded.
func (r *RedisHandler) Generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, r.GenerationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// Set stores a key-value pair in Redis with an optional expiration.
func (r *RedisHandler) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	gen, err := r.Generation(ctx)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.Key(gen, key), data, expiration).Err()
}

// SetAt writes under generation. Keys of a generation that was already bumped
// are never read again and expire on their own.
func (r *RedisHandler) SetAt(ctx context.Context, generation int64, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return r.client.Set(ctx, r.Key(generation, key), data, expiration).Err()
}

// Get deserializes the value of key into result. A missing key is a miss, not an error.
func (r *RedisHandler) Get(ctx context.Context, key string, result interface{}) (bool, error) {
	gen, err := r.Generation(ctx)
	if err != nil {
		return false, err
	}

	data, err := r.client.Get(ctx, r.Key(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to get key: %w", err)
	}

	if err := json.Unmarshal(data, result); err != nil {
		return false, fmt.Errorf("failed to deserialize value: %w", err)
	}
	return true, nil
}

// Invalidate moves every reader to a fresh generation; old keys expire on their own.
func (r *RedisHandler) Invalidate(ctx context.Context) error {
	if err := r.client.Incr(ctx, r.GenerationKey()).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

// Close closes the Redis client connection.
func (r *RedisHandler) Close() error {
	return r.client.Close()
}
