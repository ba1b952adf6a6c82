package redis

import (
	"context"
	"fmt"

	"reportctl/config"
	"reportctl/pkg/redis"
)

// Connect creates a Redis client for the token store and checks that it answers.
// The caller owns the client and closes it.
func Connect(ctx context.Context, cfg config.RedisConfig) (redis.IRedis, error) {
	client, err := redis.NewRedis(redis.RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}

	if err := HealthCheck(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// HealthCheck checks if the Redis connection is healthy.
func HealthCheck(ctx context.Context, client redis.IRedis) error {
	if client == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
