package captcha

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store interface {
	Set(ctx context.Context, key, code string, ttl time.Duration) error
	// Take returns and removes the code stored under key. found is false
	// when the key is missing or expired.
	Take(ctx context.Context, key string) (code string, found bool, err error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Set(ctx context.Context, key, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, cacheKey(key), code, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Take uses GETDEL so two concurrent verifications cannot both read the code.
func (s *RedisStore) Take(ctx context.Context, key string) (string, bool, error) {
	code, err := s.client.GetDel(ctx, cacheKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis getdel failed: %w", err)
	}
	return code, true, nil
}

func cacheKey(key string) string {
	return "captcha:" + key
}
