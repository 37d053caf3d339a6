package staging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Provider = (*Redis)(nil)

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Scope(namespace string) Store {
	return &redisScope{parent: r, namespace: namespace}
}

type redisScope struct {
	parent    *Redis
	namespace string
}

func (s *redisScope) SetItem(ctx context.Context, key string, value []byte) error {
	err := s.parent.client.Set(ctx, scopedKey(s.namespace, key), value, s.parent.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", key, err)
	}
	return nil
}

func (s *redisScope) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.parent.client.Get(ctx, scopedKey(s.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read staged %s: %w", key, err)
	}
	return v, true, nil
}

func (s *redisScope) RemoveItem(ctx context.Context, key string) error {
	err := s.parent.client.Del(ctx, scopedKey(s.namespace, key)).Err()
	if err != nil {
		return fmt.Errorf("failed to remove staged %s: %w", key, err)
	}
	return nil
}
