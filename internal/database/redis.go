package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKVStore provides simple kv store interface based on redis.
// Unlike BoltKVStore it can be shared by many service instances.
type RedisKVStore struct {
	rdb        *redis.Client
	prefix     string
	expiration time.Duration
	timeout    time.Duration
}

// NewRedisKVStore creates new RedisKVStore instance.
// Keys are prefixed with given prefix. Zero expiration means keys never expire.
// Every operation is canceled after timeout.
func NewRedisKVStore(rdb *redis.Client, prefix string, expiration time.Duration, timeout time.Duration) *RedisKVStore {
	return &RedisKVStore{
		rdb:        rdb,
		prefix:     prefix,
		expiration: expiration,
		timeout:    timeout,
	}
}

// ReadKey returns data saved for given key. Returns nil if there's no data stored.
func (s *RedisKVStore) ReadKey(key []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.rdb.Get(ctx, s.prefix+string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading from redis: %w", err)
	}

	return data, nil
}

// UpdateKey stores given data under given key.
func (s *RedisKVStore) UpdateKey(key []byte, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.rdb.Set(ctx, s.prefix+string(key), data, s.expiration).Err(); err != nil {
		return fmt.Errorf("writing to redis: %w", err)
	}

	return nil
}

// Close closes redis client.
func (s *RedisKVStore) Close() error {
	return s.rdb.Close()
}
