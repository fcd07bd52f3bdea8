package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"scamshield/internal/core/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps values as plain Redis strings without expiry.
type RedisStorage struct {
	Client *redis.Client
}

func NewRedisStorage(ctx context.Context, redisURI string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 10
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Println("✅ Connected to Redis")
	return &RedisStorage{Client: client}, nil
}

var _ ports.KeyValueStore = (*RedisStorage)(nil)

func (s *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	if err := s.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Close() error {
	return s.Client.Close()
}
