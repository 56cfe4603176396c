package session

import (
	"context"
	"fmt"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/config"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

// RedisEngine stores session entries in an external cache so they
// survive restarts and are shared across frontend instances.
type RedisEngine struct {
	client *redis.Client
}

func NewRedisEngine(cfg *config.Config) (*RedisEngine, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Session.Redis.Password,
		DB:       cfg.Session.Redis.DB,
		PoolSize: cfg.Session.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisEngine{client: rdb}, nil
}

func (e *RedisEngine) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := e.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (e *RedisEngine) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return e.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

func (e *RedisEngine) Delete(ctx context.Context, key string) error {
	return e.client.Del(ctx, keyPrefix+key).Err()
}

func (e *RedisEngine) Close() error {
	return e.client.Close()
}
