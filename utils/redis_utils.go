package utils

import (
	"context"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
)

// RedisConfigured reports whether REDIS_HOST is set. Redis is optional for a
// single instance deployment.
func RedisConfigured() bool {
	return os.Getenv("REDIS_HOST") != ""
}

// GetRedisClient connects to the redis specified by env and pings it.
func GetRedisClient(ctx context.Context) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return redisClient, nil
}
