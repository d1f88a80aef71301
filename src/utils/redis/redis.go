package redis_utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finflow/src/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisHandler encapsulates the Redis client and provides utility methods.
type RedisHandler struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisHandler initializes a new Redis handler.
func NewRedisHandler(cfg *config.Config) (*RedisHandler, error) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Databases.Redis.Host + ":" + cfg.Databases.Redis.Port,
		Username: cfg.Databases.Redis.Username,
		Password: cfg.Databases.Redis.Password, // Leave empty for no password
		DB:       cfg.Databases.Redis.Database, // Default DB index
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisHandler{
		client: client,
		ctx:    ctx,
	}, nil
}

// Set stores a key-value pair in Redis with an optional expiration.
func (r *RedisHandler) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	return r.client.Set(r.ctx, key, data, expiration).Err()
}

// Get retrieves and deserializes the value of a key from Redis into the provided result.
func (r *RedisHandler) Get(key string, result interface{}) error {
	data, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("key does not exist: %s", key)
	} else if err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}

	if err := json.Unmarshal([]byte(data), result); err != nil {
		return fmt.Errorf("failed to deserialize value: %w", err)
	}
	return nil
}

// Delete removes a key from Redis.
func (r *RedisHandler) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Exists checks if a key exists in Redis.
func (r *RedisHandler) Exists(key string) (bool, error) {
	count, err := r.client.Exists(r.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return count > 0, nil
}

// ZAdd upserts a member with the given score into a sorted set.
func (r *RedisHandler) ZAdd(ctx context.Context, key, member string, score float64) error {
	return r.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

// ZScore returns the score of a member in a sorted set. The second return
// value is false when the member is not part of the set.
func (r *RedisHandler) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	score, err := r.client.ZScore(ctx, key, member).Result()
	if err == redis.Nil {
		return 0, false, nil
	} else if err != nil {
		return 0, false, fmt.Errorf("failed to get score for %s: %w", member, err)
	}
	return score, true, nil
}

// ZRevRangeWithScores returns all members of a sorted set ordered by
// descending score.
func (r *RedisHandler) ZRevRangeWithScores(ctx context.Context, key string) ([]redis.Z, error) {
	entries, err := r.client.ZRevRangeWithScores(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range sorted set %s: %w", key, err)
	}
	return entries, nil
}

// HSet stores fields of a hash.
func (r *RedisHandler) HSet(ctx context.Context, key string, values map[string]string) error {
	return r.client.HSet(ctx, key, values).Err()
}

// HGet retrieves a single field of a hash. Missing fields resolve to "".
func (r *RedisHandler) HGet(ctx context.Context, key, field string) (string, error) {
	value, err := r.client.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("failed to get hash field %s.%s: %w", key, field, err)
	}
	return value, nil
}

// GenerateUUID generates a real deterministic UUID (version 5) from multiple input strings.
func GenerateUUID(inputs ...string) (string, error) {
	// Use a namespace UUID (you can create a new one or use a standard one)
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8") // DNS namespace

	combined := ""
	for _, input := range inputs {
		combined += input
	}

	deterministicUUID := uuid.NewMD5(namespace, []byte(combined))

	return deterministicUUID.String(), nil
}

// Close closes the Redis client connection.
func (r *RedisHandler) Close() error {
	return r.client.Close()
}
