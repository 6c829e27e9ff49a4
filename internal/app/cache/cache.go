package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
)

// Cache of short URLs by handle
type Cache interface {
	// Get short URL. ok is false on a cache miss
	Get(ctx context.Context, handle int) (shortURL models.ShortURL, ok bool, err error)
	Set(ctx context.Context, shortURL models.ShortURL) error
	Close() error
}

// Redis backed cache
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redisURL. Plain host:port is accepted as well.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisCacheWithClient(client, ttl), nil
}

// NewRedisCacheWithClient
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get
func (c *RedisCache) Get(ctx context.Context, handle int) (models.ShortURL, bool, error) {
	val, err := c.client.Get(ctx, key(handle)).Bytes()
	if err == redis.Nil {
		return models.ShortURL{}, false, nil
	}
	if err != nil {
		return models.ShortURL{}, false, fmt.Errorf("failed to get cached short url: %w", err)
	}

	var shortURL models.ShortURL
	if err := json.Unmarshal(val, &shortURL); err != nil {
		return models.ShortURL{}, false, fmt.Errorf("failed to decode cached short url: %w", err)
	}

	return shortURL, true, nil
}

// Set
func (c *RedisCache) Set(ctx context.Context, shortURL models.ShortURL) error {
	data, err := json.Marshal(shortURL)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key(shortURL.Handle), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache short url: %w", err)
	}

	return nil
}

// Close
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func key(handle int) string {
	return "shorturl:" + strconv.Itoa(handle)
}

// Cache that never stores anything
type NopCache struct{}

// Get always misses
func (NopCache) Get(ctx context.Context, handle int) (models.ShortURL, bool, error) {
	return models.ShortURL{}, false, nil
}

// Set
func (NopCache) Set(ctx context.Context, shortURL models.ShortURL) error {
	return nil
}

// Close
func (NopCache) Close() error {
	return nil
}
