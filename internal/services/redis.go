package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const roleCacheTTL = 5 * time.Minute

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// CacheUserRole stores a role lookup result. The role endpoint backs the
// client's UI gating, so short staleness is fine.
func CacheUserRole(ctx context.Context, email, role string) error {
	if RedisClient == nil {
		return nil
	}
	key := fmt.Sprintf("user:role:%s", email)
	return RedisClient.Set(ctx, key, role, roleCacheTTL).Err()
}

// GetCachedUserRole retrieves a cached role. A miss returns an empty string.
func GetCachedUserRole(ctx context.Context, email string) (string, error) {
	if RedisClient == nil {
		return "", nil
	}
	key := fmt.Sprintf("user:role:%s", email)
	role, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

// InvalidateUserRole drops the cached role after a role mutation.
func InvalidateUserRole(ctx context.Context, email string) error {
	if RedisClient == nil {
		return nil
	}
	key := fmt.Sprintf("user:role:%s", email)
	return RedisClient.Del(ctx, key).Err()
}
