package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// keyPrefix namespaces preference keys so the console can share a Redis
// instance with other tools.
const keyPrefix = "jrss:prefs"

// RedisPreferences stores preferences as plain Redis strings keyed by
// user email and preference name.
type RedisPreferences struct {
	client *redis.Client
	logger *log.Logger
}

// NewRedisPreferences connects to Redis and verifies the connection.
func NewRedisPreferences(redisURL string, logger *log.Logger) (*RedisPreferences, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if logger == nil {
		logger = log.New(log.Writer(), "[RedisPreferences] ", log.LstdFlags)
	}

	return &RedisPreferences{client: client, logger: logger}, nil
}

func prefKey(email, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, email, key)
}

// Get returns the stored value of a key.
func (rp *RedisPreferences) Get(ctx context.Context, email, key string) (string, bool, error) {
	value, err := rp.client.Get(ctx, prefKey(email, key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value under a key. Preferences never expire.
func (rp *RedisPreferences) Set(ctx context.Context, email, key, value string) error {
	if err := rp.client.Set(ctx, prefKey(email, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store preference %s: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (rp *RedisPreferences) Delete(ctx context.Context, email, key string) error {
	if err := rp.client.Del(ctx, prefKey(email, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}
	return nil
}

// HealthCheck pings the Redis connection.
func (rp *RedisPreferences) HealthCheck(ctx context.Context) error {
	return rp.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (rp *RedisPreferences) Close() error {
	return rp.client.Close()
}
