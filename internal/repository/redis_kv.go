package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV is a Redis implementation of KVStore. Keys are namespaced as
// invoicegen:<scope>:<key> so several scopes can share one database.
type RedisKV struct {
	client *redis.Client
	scope  string
}

// NewRedisKV wraps an existing client
func NewRedisKV(client *redis.Client, scope string) *RedisKV {
	return &RedisKV{client: client, scope: scope}
}

// OpenRedisKV connects to addr and verifies the connection
func OpenRedisKV(ctx context.Context, addr string, dbIndex int, scope string) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: dbIndex})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisKV(client, scope), nil
}

func (r *RedisKV) key(key string) string {
	return "invoicegen:" + r.scope + ":" + key
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client
func (r *RedisKV) Close() error {
	return r.client.Close()
}
